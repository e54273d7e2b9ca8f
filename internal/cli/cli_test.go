package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/fairsplit/internal/service"
	"github.com/mmynk/fairsplit/pkg/api"
	"github.com/mmynk/fairsplit/pkg/api/apiconnect"
)

const billJSON = `{
  "items": [
    {"id": "steak", "name": "Steak", "price": 30, "assigned_to": ["alice"]},
    {"id": "pasta", "name": "Pasta", "price": 20, "assigned_to": ["bob"]},
    {"id": "salad", "name": "Salad", "price": 10, "assigned_to": ["charlie"]}
  ],
  "tax": 6,
  "tip_type": "percent",
  "tip_percentage": 10,
  "people": [
    {"id": "alice", "name": "Alice", "color": "#6366f1"},
    {"id": "bob", "name": "Bob", "color": "#ec4899"},
    {"id": "charlie", "name": "Charlie", "color": "#10b981"}
  ],
  "coverage": [{"covered_id": "charlie", "payer_id": "alice"}]
}`

// executeCommand runs the CLI with args and returns captured stdout.
func executeCommand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestSettlePrintsTable(t *testing.T) {
	out, err := executeCommand(t, "", "settle", writeFile(t, "bill.json", billJSON))
	require.NoError(t, err)

	assert.Contains(t, out, "Alice")
	assert.Contains(t, out, "$48.00")
	assert.Contains(t, out, "Covering Charlie")
	assert.Contains(t, out, "Covered by Alice")
	assert.Contains(t, out, "Total $72.00")
}

func TestSettleJSONFromStdin(t *testing.T) {
	out, err := executeCommand(t, billJSON, "settle", "--json", "-")
	require.NoError(t, err)

	var resp api.ComputeFinalSplitsResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Splits, 3)
	assert.Equal(t, "charlie", resp.Splits[2].PersonID)
	assert.Zero(t, resp.Splits[2].FinalTotal)
	assert.InDelta(t, 72.0, resp.Totals.GrandTotal, 1e-9)
}

func TestSettleAgainstServer(t *testing.T) {
	mux := http.NewServeMux()
	mux.Handle(apiconnect.NewSplitServiceHandler(service.NewSplitService(nil, nil)))
	server := httptest.NewServer(mux)
	defer server.Close()

	out, err := executeCommand(t, "", "settle", "--server", server.URL, writeFile(t, "bill.json", billJSON))
	require.NoError(t, err)
	assert.Contains(t, out, "Covered by Alice")
}

func TestSettleRejectsBadInput(t *testing.T) {
	_, err := executeCommand(t, "", "settle", writeFile(t, "bill.json", `{"items":[{"id":"x","price":-5}]}`))
	assert.ErrorContains(t, err, "invalid_argument")

	_, err = executeCommand(t, "", "settle", writeFile(t, "bill.json", `not json`))
	assert.ErrorContains(t, err, "failed to parse bill")

	_, err = executeCommand(t, "", "settle", filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorContains(t, err, "failed to read")
}

func TestShare(t *testing.T) {
	out, err := executeCommand(t, "", "share", "--person", "alice", writeFile(t, "bill.json", billJSON))
	require.NoError(t, err)
	assert.Contains(t, out, "Steak")
	assert.Regexp(t, `Total\s+\$36\.00`, out)
}

func TestSeed(t *testing.T) {
	receiptPath := writeFile(t, "receipt.json", `{"items":[{"name":"Burger","price":12}],"tax":1,"tip":2}`)

	out, err := executeCommand(t, "", "seed", "--person", "Alice", "--person", "Bob", receiptPath)
	require.NoError(t, err)

	var bill api.Bill
	require.NoError(t, json.Unmarshal([]byte(out), &bill))
	require.Len(t, bill.People, 2)
	assert.Equal(t, "amount", bill.TipType)
	assert.Equal(t, 2.0, bill.TipAmount)
	require.Len(t, bill.Items, 1)
	assert.Equal(t, "Burger", bill.Items[0].Name)
}

func TestCover(t *testing.T) {
	path := writeFile(t, "bill.json", billJSON)

	out, err := executeCommand(t, "", "cover", "--covered", "charlie", "--split-all", path)
	require.NoError(t, err)
	var bill api.Bill
	require.NoError(t, json.Unmarshal([]byte(out), &bill))
	assert.Equal(t, []api.Coverage{{CoveredID: "charlie", SplitAll: true}}, bill.Coverage)

	out, err = executeCommand(t, "", "cover", "--covered", "charlie", "--clear", path)
	require.NoError(t, err)
	bill = api.Bill{}
	require.NoError(t, json.Unmarshal([]byte(out), &bill))
	assert.Empty(t, bill.Coverage)

	_, err = executeCommand(t, "", "cover", "--covered", "zed", "--payer", "alice", path)
	assert.ErrorContains(t, err, "person not found")

	_, err = executeCommand(t, "", "cover", "--covered", "charlie", "--payer", "alice", "--split-all", path)
	assert.Error(t, err)
}

func decodeBill(t *testing.T, out string) api.Bill {
	t.Helper()
	var bill api.Bill
	require.NoError(t, json.Unmarshal([]byte(out), &bill))
	return bill
}

func TestSeedRejectsInvalidReceipt(t *testing.T) {
	path := writeFile(t, "receipt.json", `{"items":[{"name":"Burger","price":-12}]}`)

	_, err := executeCommand(t, "", "seed", path)
	assert.ErrorContains(t, err, "invalid receipt")
}

func TestNew(t *testing.T) {
	out, err := executeCommand(t, "", "new", "--person", "Bob")
	require.NoError(t, err)

	bill := decodeBill(t, out)
	require.Len(t, bill.People, 2)
	assert.Equal(t, "Me", bill.People[0].Name)
	assert.Equal(t, "Bob", bill.People[1].Name)
	assert.Equal(t, "percent", bill.TipType)
	assert.Equal(t, 15.0, bill.TipPercentage)
	assert.Empty(t, bill.Items)
}

func TestItemCommands(t *testing.T) {
	path := writeFile(t, "bill.json", billJSON)

	out, err := executeCommand(t, "", "item", "add", "--name", "Wine", "--price", "24", path)
	require.NoError(t, err)
	bill := decodeBill(t, out)
	require.Len(t, bill.Items, 4)
	assert.Equal(t, "Wine", bill.Items[3].Name)
	assert.Equal(t, 24.0, bill.Items[3].Price)
	assert.Empty(t, bill.Items[3].AssignedTo)

	out, err = executeCommand(t, "", "item", "edit", "--id", "steak", "--price", "40", path)
	require.NoError(t, err)
	bill = decodeBill(t, out)
	assert.Equal(t, "Steak", bill.Items[0].Name)
	assert.Equal(t, 40.0, bill.Items[0].Price)

	out, err = executeCommand(t, "", "item", "rm", "--id", "pasta", path)
	require.NoError(t, err)
	bill = decodeBill(t, out)
	require.Len(t, bill.Items, 2)
	assert.Equal(t, "salad", bill.Items[1].ID)

	_, err = executeCommand(t, "", "item", "rm", "--id", "soup", path)
	assert.ErrorContains(t, err, "item not found")

	_, err = executeCommand(t, "", "item", "edit", "--id", "steak", "--price", "-1", path)
	assert.ErrorContains(t, err, "price must not be negative")
}

func TestAssignAndWeight(t *testing.T) {
	out, err := executeCommand(t, "", "assign", "--item", "steak", "--person", "bob", writeFile(t, "bill.json", billJSON))
	require.NoError(t, err)
	bill := decodeBill(t, out)
	assert.ElementsMatch(t, []string{"alice", "bob"}, bill.Items[0].AssignedTo)

	shared := writeFile(t, "shared.json", out)
	out, err = executeCommand(t, "", "weight", "--item", "steak", "--person", "bob", "--delta", "2", shared)
	require.NoError(t, err)
	bill = decodeBill(t, out)
	assert.Equal(t, 3, bill.Items[0].Shares["bob"])

	out, err = executeCommand(t, "", "assign", "--item", "steak", "--person", "bob", writeFile(t, "weighted.json", out))
	require.NoError(t, err)
	bill = decodeBill(t, out)
	assert.Equal(t, []string{"alice"}, bill.Items[0].AssignedTo)
	assert.NotContains(t, bill.Items[0].Shares, "bob")

	_, err = executeCommand(t, "", "weight", "--item", "pasta", "--person", "alice", shared)
	assert.ErrorContains(t, err, "person not found")
}

func TestPersonCommands(t *testing.T) {
	path := writeFile(t, "bill.json", billJSON)

	out, err := executeCommand(t, "", "person", "add", "--name", "Dana", path)
	require.NoError(t, err)
	bill := decodeBill(t, out)
	require.Len(t, bill.People, 4)
	assert.Equal(t, "Dana", bill.People[3].Name)
	assert.NotEmpty(t, bill.People[3].Color)

	out, err = executeCommand(t, "", "person", "rm", "--id", "charlie", path)
	require.NoError(t, err)
	bill = decodeBill(t, out)
	require.Len(t, bill.People, 2)
	assert.Empty(t, bill.Items[2].AssignedTo)
	assert.Empty(t, bill.Coverage)

	_, err = executeCommand(t, "", "person", "add", "--name", "  ", path)
	assert.ErrorContains(t, err, "name must not be empty")
}

func TestTip(t *testing.T) {
	path := writeFile(t, "bill.json", billJSON)

	out, err := executeCommand(t, "", "tip", "--amount", "5", path)
	require.NoError(t, err)
	bill := decodeBill(t, out)
	assert.Equal(t, "amount", bill.TipType)
	assert.Equal(t, 5.0, bill.TipAmount)

	out, err = executeCommand(t, "", "tip", "--percent", "20", path)
	require.NoError(t, err)
	bill = decodeBill(t, out)
	assert.Equal(t, "percent", bill.TipType)
	assert.Equal(t, 20.0, bill.TipPercentage)

	_, err = executeCommand(t, "", "tip", "--percent", "20", "--amount", "5", path)
	assert.Error(t, err)

	_, err = executeCommand(t, "", "tip", "--amount", "-5", path)
	assert.ErrorContains(t, err, "tip must not be negative")
}
