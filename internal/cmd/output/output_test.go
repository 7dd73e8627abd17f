package output

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/agentstation/utc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/usersweep/pkg/documents"
	"github.com/agentstation/usersweep/pkg/errors"
	"github.com/agentstation/usersweep/pkg/identity"
	"github.com/agentstation/usersweep/pkg/purge"
	"github.com/agentstation/usersweep/pkg/reconciler"
)

func sampleResult() *reconciler.Result {
	return &reconciler.Result{
		Collection: "usuarios",
		Identities: []identity.Record{
			{ID: "A", Email: "a@example.com", EmailVerified: true, CreatedAt: utc.New(time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC))},
			{ID: "B"},
		},
		Documents: []reconciler.Classified{
			{Record: documents.Record{ID: "A", Email: "a@example.com", Name: "Ana"}, Status: reconciler.StatusConsistent},
			{Record: documents.Record{ID: "D"}, Status: reconciler.StatusOrphan},
		},
	}
}

func TestIdentityTable(t *testing.T) {
	d := IdentityTable(sampleResult())
	require.Len(t, d.Rows, 2)
	assert.Equal(t, []string{"1", "a@example.com", "A", "yes", "2025-01-02 03:04:05"}, d.Rows[0])
	assert.Equal(t, []string{"2", "-", "B", "no", "-"}, d.Rows[1])
}

func TestDocumentTable(t *testing.T) {
	d := DocumentTable(sampleResult())
	assert.Equal(t, "Document store (usuarios)", d.Title)
	require.Len(t, d.Rows, 2)
	assert.Equal(t, []string{"1", "consistent", "a@example.com", "A", "Ana", "no"}, d.Rows[0])
	assert.Equal(t, "orphan", d.Rows[1][1])
}

func sampleOutcome() *purge.Outcome {
	return &purge.Outcome{
		Mode: purge.ModeOrphans,
		Succeeded: []purge.Entry{
			{Store: "documents", ID: "D", Collection: "usuarios", Cascade: []purge.CascadeResult{
				{Collection: "verification_codes"},
				{Collection: "codigos_verificacao", Err: errors.New("denied")},
			}},
		},
		Failed: []purge.Failure{
			{Entry: purge.Entry{Store: "documents", ID: "E", Email: "e@example.com"}, Err: errors.New("quota exceeded")},
		},
	}
}

func TestOutcomeTable(t *testing.T) {
	d := OutcomeTable(sampleOutcome())
	require.Len(t, d.Rows, 2)
	assert.Equal(t, []string{"documents", "D", "-", "deleted", "cascade failed: codigos_verificacao: denied"}, d.Rows[0])
	assert.Equal(t, []string{"documents", "E", "e@example.com", "failed", "quota exceeded"}, d.Rows[1])
}

func TestOutcomeViewJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatJSON).Format(&buf, NewOutcomeView(sampleOutcome())))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "orphans", decoded["mode"])
	assert.Equal(t, "1 succeeded, 1 failed", decoded["summary"])
	failed := decoded["failed"].([]any)
	require.Len(t, failed, 1)
	assert.Equal(t, "quota exceeded", failed[0].(map[string]any)["error"])
	assert.Equal(t, "E", failed[0].(map[string]any)["id"])
}

func TestYAMLFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatYAML).Format(&buf, NewOutcomeView(sampleOutcome())))
	assert.Contains(t, buf.String(), "mode: orphans")
	assert.Contains(t, buf.String(), "error: quota exceeded")
}

func TestTableFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatTable).Format(&buf, ReconcileTables(sampleResult())))
	out := buf.String()
	assert.Contains(t, out, "Identity store")
	assert.Contains(t, out, "Document store (usuarios)")
	assert.Contains(t, out, "a@example.com")
	assert.Contains(t, out, "orphan")
}

func TestTableFormatterReflection(t *testing.T) {
	type row struct {
		UserID string `json:"user_id"`
		Secret string `json:"-"`
		Count  int
	}

	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatTable).Format(&buf, []row{{UserID: "u1", Secret: "s", Count: 2}}))
	assert.Contains(t, buf.String(), "u1")

	d, ok := reflectTable(row{UserID: "u1", Count: 3})
	require.True(t, ok)
	assert.Equal(t, [][]string{{"User Id", "u1"}, {"Count", "3"}}, d.Rows)
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"table", "JSON", "yaml", ""} {
		_, err := ParseFormat(s)
		assert.NoError(t, err, s)
	}
	_, err := ParseFormat("xml")
	assert.Error(t, err)

	assert.Equal(t, FormatYAML, DetectFormat("YAML"))
}
