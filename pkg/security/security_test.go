package security

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChandanKT-git/QA-Janitri/pkg/config"
	"github.com/ChandanKT-git/QA-Janitri/pkg/testutil"
)

func TestPayloadMatricesAreStable(t *testing.T) {
	t.Parallel()

	xss := XSSPayloads()
	require.Len(t, xss, 5)
	assert.Contains(t, xss, `<script>alert('XSS')</script>`)
	assert.Contains(t, xss, `<svg/onload=alert('XSS')>`)

	sqli := SQLiPayloads()
	require.Len(t, sqli, 5)
	assert.Contains(t, sqli, `' OR '1'='1`)
	assert.Contains(t, sqli, `1'; DROP TABLE users; --`)

	// Callers get copies, not the shared slice.
	xss[0] = "mutated"
	assert.Equal(t, `<script>alert('XSS')</script>`, XSSPayloads()[0])
}

func TestPayloadReflected(t *testing.T) {
	t.Parallel()

	payload := `<script>alert('XSS')</script>`

	tests := []struct {
		name   string
		source string
		want   bool
	}{
		{"raw reflection", `<body><script>alert('XSS')</script></body>`, true},
		{"escaped reflection", `<body>&lt;script&gt;alert(&#39;XSS&#39;)&lt;/script&gt;</body>`, false},
		{"absent", `<body>welcome</body>`, false},
		{"raw beside escaped", `<body>&lt;script&gt;alert(&#39;XSS&#39;)&lt;/script&gt;<script>alert('XSS')</script></body>`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, PayloadReflected(tt.source, payload))
		})
	}

	assert.False(t, PayloadReflected("anything", ""))
}

func TestLooksLikeDatabaseError(t *testing.T) {
	t.Parallel()

	assert.True(t, LooksLikeDatabaseError("You have an error in your SQL syntax near line 1"))
	assert.True(t, LooksLikeDatabaseError("ORA-00933: SQL command not properly ended"))
	assert.True(t, LooksLikeDatabaseError("Unclosed quotation mark after the character string"))
	assert.False(t, LooksLikeDatabaseError("Invalid credentials"))
	assert.False(t, LooksLikeDatabaseError(""))
}

func TestHasAntiCSRFToken(t *testing.T) {
	t.Parallel()

	withToken := FormSnapshot{
		Action: "/login",
		Method: "post",
		Hidden: []HiddenInput{{Name: "csrf_token", Value: "abc123"}},
	}
	assert.True(t, HasAntiCSRFToken(withToken))

	// The name alone decides; an empty value is still a token field.
	emptyToken := FormSnapshot{
		Hidden: []HiddenInput{{Name: "csrf_token", Value: ""}},
	}
	assert.True(t, HasAntiCSRFToken(emptyToken))

	unrelatedHidden := FormSnapshot{
		Hidden: []HiddenInput{{Name: "redirect_to", Value: "/home"}},
	}
	assert.False(t, HasAntiCSRFToken(unrelatedHidden))

	noHidden := FormSnapshot{Action: "/login", Method: "post"}
	assert.False(t, HasAntiCSRFToken(noHidden))

	authenticity := FormSnapshot{
		Hidden: []HiddenInput{{Name: "AUTHENTICITY_TOKEN", Value: "tok"}},
	}
	assert.True(t, HasAntiCSRFToken(authenticity))
}

func TestParseFormSnapshots(t *testing.T) {
	t.Parallel()

	raw := []any{
		map[string]any{
			"action": "/login",
			"method": "post",
			"hidden": []any{
				map[string]any{"name": "csrf", "value": "tok"},
			},
		},
		map[string]any{"action": "", "method": "get"},
	}

	forms := parseFormSnapshots(raw)
	require.Len(t, forms, 2)
	assert.Equal(t, "/login", forms[0].Action)
	require.Len(t, forms[0].Hidden, 1)
	assert.Equal(t, "csrf", forms[0].Hidden[0].Name)
	assert.Empty(t, forms[1].Hidden)

	assert.Nil(t, parseFormSnapshots("not a slice"))
	assert.Empty(t, parseFormSnapshots([]any{"not a map"}))
}

func TestRunBatchContinuesPastFailures(t *testing.T) {
	t.Parallel()

	payloads := []string{"p1", "p2", "p3", "p4", "p5"}
	var attempted, recovered []string

	err := runBatch(context.Background(), payloads, func(p string) error {
		attempted = append(attempted, p)
		if p == "p2" {
			return errors.New("navigation lost")
		}
		return nil
	}, func(p string, err error) {
		recovered = append(recovered, p)
	})

	require.NoError(t, err)
	assert.Equal(t, payloads, attempted, "one failing payload must not stop the rest")
	assert.Equal(t, []string{"p2"}, recovered)
}

func TestRunBatchStopsOnCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := runBatch(ctx, []string{"p1", "p2"}, func(string) error {
		calls++
		return nil
	}, func(string, error) {})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, calls)
}

func disabledProbe(t *testing.T, props map[string]string) *Probe {
	t.Helper()
	cfg := config.Load(testutil.TempProperties(t, props))
	// Session stays nil; a gated-off probe must never touch it.
	return NewProbe(nil, nil, cfg, testutil.Logger(t))
}

func TestProbesRespectMasterSwitch(t *testing.T) {
	t.Parallel()

	p := disabledProbe(t, map[string]string{"enableSecurityTests": "false"})

	findings, err := p.ProbeXSS(context.Background())
	require.NoError(t, err)
	assert.Empty(t, findings)

	findings, err = p.ProbeSQLi(context.Background())
	require.NoError(t, err)
	assert.Empty(t, findings)

	findings, err = p.AuditCSRF(context.Background())
	require.NoError(t, err)
	assert.Empty(t, findings)
}

func TestProbesRespectPerCheckFlags(t *testing.T) {
	t.Parallel()

	p := disabledProbe(t, map[string]string{
		"checkForXssVulnerabilities":          "false",
		"checkForSqlInjectionVulnerabilities": "false",
	})

	findings, err := p.ProbeXSS(context.Background())
	require.NoError(t, err)
	assert.Empty(t, findings)

	findings, err = p.ProbeSQLi(context.Background())
	require.NoError(t, err)
	assert.Empty(t, findings)
}
