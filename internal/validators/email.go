package validators

import (
	"context"
	"errors"
	"net"
	"strings"
	"time"
)

// EmailDomainChecker asks DNS whether an address's domain can receive mail.
type EmailDomainChecker struct {
	resolver *net.Resolver
	timeout  time.Duration
}

func NewEmailDomainChecker(timeout time.Duration) *EmailDomainChecker {
	return &EmailDomainChecker{resolver: net.DefaultResolver, timeout: timeout}
}

// Check reports false for malformed addresses and for domains with neither MX
// nor A/AAAA records. A resolver timeout counts as valid.
func (c *EmailDomainChecker) Check(ctx context.Context, email string) bool {
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	domain := email[at+1:]

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	mx, err := c.resolver.LookupMX(ctx, domain)
	if err == nil && len(mx) > 0 {
		return true
	}
	if isTimeout(err) {
		return true
	}

	ips, err := c.resolver.LookupIPAddr(ctx, domain)
	if err == nil && len(ips) > 0 {
		return true
	}
	return isTimeout(err)
}

func isTimeout(err error) bool {
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr) && dnsErr.IsTimeout
}
