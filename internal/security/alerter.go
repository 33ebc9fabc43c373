package security

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

var alertCounterScript = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if count == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return count
`)

// Rule is the failure budget for one event outcome per client IP.
type Rule struct {
	Threshold int64
	Window    time.Duration
}

// DefaultRules covers the account endpoints exposed by the API.
var DefaultRules = map[string]Rule{
	"auth.login:fail":            {Threshold: 10, Window: 5 * time.Minute},
	"auth.register:fail":         {Threshold: 10, Window: 5 * time.Minute},
	"auth.login:rate_limited":    {Threshold: 20, Window: time.Minute},
	"auth.register:rate_limited": {Threshold: 20, Window: time.Minute},
}

// AlertResult reports the counter state after an observation. Triggered is
// set only on the observation that reaches the threshold, so each window
// alerts once.
type AlertResult struct {
	Triggered bool
	Count     int64
	Threshold int64
	Window    time.Duration
}

// AuditAlerter counts security events per IP in Redis windows.
type AuditAlerter struct {
	client *redis.Client
	prefix string
	rules  map[string]Rule
	now    func() time.Time
}

// NewAuditAlerter returns nil when addr is empty; a nil alerter observes
// nothing.
func NewAuditAlerter(addr, password, prefix string) *AuditAlerter {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil
	}
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "jobconnect:alerts"
	}
	return &AuditAlerter{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
		}),
		prefix: prefix,
		rules:  DefaultRules,
		now:    time.Now,
	}
}

// Observe records one event outcome for ip.
func (a *AuditAlerter) Observe(ctx context.Context, event, outcome, ip string) (AlertResult, error) {
	if a == nil || a.client == nil {
		return AlertResult{}, nil
	}
	rule, ok := a.rules[strings.TrimSpace(event)+":"+strings.TrimSpace(outcome)]
	if !ok || rule.Window <= 0 {
		return AlertResult{}, nil
	}
	windowMs := rule.Window.Milliseconds()
	slot := a.now().UTC().UnixMilli() / windowMs
	key := fmt.Sprintf("%s:%s:%s:%s:%d", a.prefix, segment(event), segment(outcome), segment(ip), slot)

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	count, err := alertCounterScript.Run(ctx, a.client, []string{key}, windowMs).Int64()
	if err != nil {
		return AlertResult{}, fmt.Errorf("alert counter: %w", err)
	}
	return AlertResult{
		Triggered: count == rule.Threshold,
		Count:     count,
		Threshold: rule.Threshold,
		Window:    rule.Window,
	}, nil
}

func segment(in string) string {
	in = strings.TrimSpace(in)
	if in == "" {
		return "unknown"
	}
	return strings.NewReplacer(":", "_", " ", "_").Replace(in)
}
