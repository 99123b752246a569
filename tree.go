package main

import (
	"slices"
	"strings"

	"github.com/miekg/dns"
)

// Node is one label of a reversed domain trie ("com" -> "example" -> "ads").
// Terminal marks that the path from the root to this node is a domain that was added.
type Node struct {
	Name     string
	Terminal bool
	Children map[string]*Node
}

func NewNode(name string) *Node {
	return &Node{
		Name:     name,
		Children: map[string]*Node{},
	}
}

func reversedLabels(domain string) []string {
	labels := dns.SplitDomainName(strings.TrimSuffix(domain, "."))
	slices.Reverse(labels)
	return labels
}

func (n *Node) AddDomain(domain string) {
	labels := reversedLabels(domain)
	if len(labels) == 0 {
		return
	}
	workingNode := n
	for _, label := range labels {
		child, ok := workingNode.SearchNode(label)
		if !ok {
			child = NewNode(label)
			workingNode.Children[label] = child
		}
		workingNode = child
	}
	workingNode.Terminal = true
}

func (n *Node) SearchNode(name string) (*Node, bool) {
	child, ok := n.Children[name]
	return child, ok
}

// Covered reports whether a strict parent of domain was added to the tree.
func (n *Node) Covered(domain string) bool {
	labels := reversedLabels(domain)
	workingNode := n
	for i, label := range labels {
		child, ok := workingNode.SearchNode(label)
		if !ok {
			return false
		}
		if child.Terminal && i < len(labels)-1 {
			return true
		}
		workingNode = child
	}
	return false
}

// pruneCoveredSubdomains drops every domain whose parent domain is also in the set.
func pruneCoveredSubdomains(domains DomainSet) DomainSet {
	rootNode := NewNode("")
	for domain := range domains {
		rootNode.AddDomain(domain)
	}
	pruned := DomainSet{}
	for domain := range domains {
		if !rootNode.Covered(domain) {
			pruned.Add(domain)
		}
	}
	return pruned
}
