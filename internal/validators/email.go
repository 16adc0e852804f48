package validators

import (
	"net"
	"strings"
)

// IsEmailDomainValid checks that the address has a domain that actually
// resolves (MX first, then any A/AAAA record). Format validation happens in
// the request binding; this catches typo'd domains that would never bounce
// back a confirmation email.
func IsEmailDomainValid(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 1 || at == len(email)-1 {
		return false
	}

	domain := email[at+1:]
	if strings.ContainsAny(domain, " \t") {
		return false
	}

	if mx, err := net.LookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}

	if ips, err := net.LookupIP(domain); err == nil && len(ips) > 0 {
		return true
	}

	return false
}
