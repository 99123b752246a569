package main

import "slices"

type DomainSet map[string]bool

func NewDomainSet(domains ...string) DomainSet {
	d := make(DomainSet, len(domains))
	for _, domain := range domains {
		d.Add(domain)
	}
	return d
}

func (d DomainSet) Add(domain string) {
	d[domain] = true
}

func (d DomainSet) Remove(domain string) {
	delete(d, domain)
}

func (d DomainSet) Contains(domain string) bool {
	_, ok := d[domain]
	return ok
}

func (d DomainSet) Len() int {
	return len(d)
}

func (d DomainSet) ToSortedList() []string {
	list := make([]string, 0, len(d))
	for domain := range d {
		list = append(list, domain)
	}
	slices.Sort(list)
	return list
}
