package main

import (
	"log"
	"regexp"
	"strings"

	"golang.org/x/net/idna"
)

var hosts_address = regexp.MustCompile(`^([0-9.]+|[0-9a-f:]*:[0-9a-f:.]*)$`)
var adblock_prefix = regexp.MustCompile(`^(@@)?\|\|?`)
var domain_pattern = regexp.MustCompile(`^([a-z0-9]|[a-z0-9][a-z0-9\-]*[a-z0-9])(\.([a-z0-9]|[a-z0-9][a-z0-9\-]*[a-z0-9]))*$`)
var ip_pattern = regexp.MustCompile(`^\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}$`)

// stripListSyntax removes hosts addresses, adblock anchors and modifiers, trailing
// comments and wildcard prefixes, leaving the bare host part of a list line.
func stripListSyntax(line string) string {
	line, _, _ = strings.Cut(line, "#")
	line, _, _ = strings.Cut(line, "$")
	line, _, _ = strings.Cut(line, "^")

	fields := strings.Fields(line)
	switch {
	case len(fields) == 0:
		return ""
	case len(fields) >= 2 && hosts_address.MatchString(fields[0]):
		line = fields[1]
	default:
		line = fields[0]
	}
	line = adblock_prefix.ReplaceAllString(line, "")
	line = strings.TrimLeft(line, "*.")
	return strings.TrimSuffix(line, ".")
}

// normalizeEntry turns one line of a hosts, adblock or plain domain list into an ASCII
// domain. ok is false for comments, blank lines and anything that is not a domain.
func normalizeEntry(line string) (string, bool) {
	line = strings.ToLower(strings.TrimSpace(line))
	if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "!") || strings.HasPrefix(line, "/") {
		return "", false
	}

	domain, err := idna.ToASCII(stripListSyntax(line))
	if err != nil {
		log.Println("Error encoding domain:", err.Error())
		return "", false
	}
	if !domain_pattern.MatchString(domain) || ip_pattern.MatchString(domain) {
		return "", false
	}
	return domain, true
}

func convert_to_domain_set(lines []string) DomainSet {
	unique_domains := DomainSet{}
	for _, line := range lines {
		if domain, ok := normalizeEntry(line); ok {
			unique_domains.Add(domain)
		}
	}
	return unique_domains
}
