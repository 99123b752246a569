package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/imroc/req/v3"
	"github.com/miekg/dns"
	"github.com/weppos/publicsuffix-go/publicsuffix"
)

// DomainProvider supplies the base domains the wildcard list is built from.
type DomainProvider interface {
	Load() ([]string, error)
}

// StaticProvider returns a fixed list of domains.
type StaticProvider []string

func (p StaticProvider) Load() ([]string, error) {
	return slices.Clone([]string(p)), nil
}

// SourceListProvider reads domains from local files and http(s) URLs.
// Sources ending in ".dat" are parsed as a Public Suffix List, everything else as a
// hosts, adblock or plain domain list.
type SourceListProvider struct {
	Sources         []string
	Exclusions      []string
	PruneSubdomains bool
	Client          *req.Client
}

func NewSourceListProvider(cfg Config) *SourceListProvider {
	return &SourceListProvider{
		Sources:         cfg.Sources,
		Exclusions:      cfg.Exclusions,
		PruneSubdomains: cfg.PruneSubdomains,
		Client:          req.NewClient(),
	}
}

func (p *SourceListProvider) Load() ([]string, error) {
	if len(p.Sources) == 0 {
		return nil, ErrNoSources
	}

	client := p.client()
	var wg sync.WaitGroup
	result := make([][]string, len(p.Sources))
	errs := make([]error, len(p.Sources))
	for i, source := range p.Sources {
		wg.Add(1)
		go func(source string, i int) {
			defer wg.Done()
			result[i], errs[i] = loadSource(source, client)
		}(source, i)
	}
	wg.Wait()
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	domains := DomainSet{}
	for _, v := range result {
		for _, d := range v {
			domains.Add(d)
		}
	}
	excluded := 0
	for d := range convert_to_domain_set(p.Exclusions) {
		if domains.Contains(d) {
			domains.Remove(d)
			excluded++
		}
	}
	if excluded > 0 {
		log.Println("Excluded", excluded, "domains")
	}
	if p.PruneSubdomains {
		before := domains.Len()
		domains = pruneCoveredSubdomains(domains)
		log.Println("Pruned", before-domains.Len(), "subdomains covered by a parent domain")
	}
	return domains.ToSortedList(), nil
}

func loadSource(source string, client *req.Client) ([]string, error) {
	body, err := readSource(source, client)
	if err != nil {
		return nil, err
	}
	if strings.HasSuffix(strings.ToLower(source), ".dat") {
		domains, err := parsePublicSuffixList(body)
		if err != nil {
			return nil, fmt.Errorf("failed to parse public suffix list %s: %w", source, err)
		}
		log.Println("Loaded", source, ". Suffixes", len(domains))
		return domains, nil
	}
	domains := convert_to_domain_set(strings.Split(body, "\n")).ToSortedList()
	log.Println("Loaded", source, ". Domains", len(domains))
	return domains, nil
}

func readSource(source string, client *req.Client) (string, error) {
	if !strings.HasPrefix(source, "http://") && !strings.HasPrefix(source, "https://") {
		content, err := os.ReadFile(source)
		if err != nil {
			return "", fmt.Errorf("failed to read source: %w", err)
		}
		return string(content), nil
	}
	return download_url(source, client)
}

// client is called once per Load, before any source goroutine starts.
func (p *SourceListProvider) client() *req.Client {
	if p.Client == nil {
		p.Client = req.NewClient()
	}
	return p.Client
}

func download_url(url string, client *req.Client) (string, error) {
	resp := client.Get(url).Do()
	if resp.Err != nil {
		return "", fmt.Errorf("failed to download %s: %w", url, resp.Err)
	}
	if resp.StatusCode != 200 {
		return "", fmt.Errorf("failed to download %s: status code %d", url, resp.StatusCode)
	}
	body_text := resp.String()
	log.Println("Downloaded", url, ". File size", len(body_text))
	return body_text, nil
}

// parsePublicSuffixList returns the ICANN suffixes of a public_suffix_list.dat body in
// ASCII form. Exception rules are skipped and wildcard rules keep only their base.
func parsePublicSuffixList(body string) ([]string, error) {
	list := publicsuffix.NewList()
	rules, err := list.Load(strings.NewReader(body), &publicsuffix.ParserOption{PrivateDomains: false})
	if err != nil {
		return nil, err
	}

	suffixes := DomainSet{}
	for _, rule := range rules {
		if rule.Type == publicsuffix.ExceptionType {
			continue
		}
		value := strings.TrimPrefix(rule.Value, "*.")
		domain, err := publicsuffix.ToASCII(value)
		if err != nil {
			return nil, fmt.Errorf("rule %q: %w", rule.Value, err)
		}
		domain = strings.TrimSuffix(dns.CanonicalName(domain), ".")
		if domain == "" {
			continue
		}
		suffixes.Add(domain)
	}
	return suffixes.ToSortedList(), nil
}
