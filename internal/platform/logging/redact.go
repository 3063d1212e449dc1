package logging

import (
	"log/slog"
	"regexp"

	"github.com/m-mizutani/masq"
)

// sensitiveFields are attribute and struct field names whose values never
// reach a sink. Matching is exact; masq compares field names as written.
var sensitiveFields = []string{
	"password", "secret", "token", "credential", "credentials", "cookie", "session",
	"apiKey", "apikey", "api_key",
	"accessToken", "access_token", "refreshToken", "refresh_token",
	"authorization", "Authorization", "bearer",
	"privateKey", "private_key",
	"signingKey", "signing_key", "SigningKey",
	"dsn", "DSN",
}

var sensitivePatterns = []*regexp.Regexp{
	// Bearer tokens accepted by the jwt auth mode.
	regexp.MustCompile(`^eyJ[A-Za-z0-9_-]*\.eyJ[A-Za-z0-9_-]*\.[A-Za-z0-9_-]*$`),
	regexp.MustCompile(`(?i)^(bearer|basic)\s+.+$`),

	// Store connection strings carrying a password, in URL or key=value form.
	regexp.MustCompile(`(?i)^postgres(ql)?://[^:/@\s]+:[^@\s]+@`),
	regexp.MustCompile(`(?i)(^|\s)password=\S+`),
}

// redactOptions returns the masq options applied to every sink.
func redactOptions() []masq.Option {
	opts := make([]masq.Option, 0, len(sensitiveFields)+len(sensitivePatterns)+2)

	for _, name := range sensitiveFields {
		opts = append(opts, masq.WithFieldName(name))
	}

	for _, re := range sensitivePatterns {
		opts = append(opts, masq.WithRegex(re))
	}

	return append(opts,
		masq.WithFieldPrefix("secret"),
		masq.WithFieldPrefix("private"),
	)
}

// newRedactor returns a slog ReplaceAttr that masks secrets. extra extends
// the built-in rules.
func newRedactor(extra ...masq.Option) func(groups []string, a slog.Attr) slog.Attr {
	return masq.New(append(redactOptions(), extra...)...)
}
