package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/idilsaglam/pizza/internal/config"
	"github.com/idilsaglam/pizza/internal/model"
	"github.com/idilsaglam/pizza/internal/pizzatest"
)

type result struct {
	code   int
	stdout string
	stderr string
}

func run(t *testing.T, args ...string) result {
	t.Helper()
	for _, k := range []string{"PIZZA_API_URL", "PIZZA_TOKEN", "PIZZA_LOG_LEVEL", "PIZZA_LOG_FILE"} {
		t.Setenv(k, "")
	}
	cfgPath := filepath.Join(t.TempDir(), "pizza.yaml")
	var out, errOut bytes.Buffer
	code := Run(context.Background(), append([]string{"--config", cfgPath}, args...), &out, &errOut)
	return result{code: code, stdout: out.String(), stderr: errOut.String()}
}

func TestMenu(t *testing.T) {
	srv := pizzatest.New(t)

	r := run(t, "--api-url", srv.URL, "menu")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Contains(t, r.stdout, "Margherita")
	assert.Contains(t, r.stdout, "cheese, mushroom")
	assert.Equal(t, 1, srv.CatalogHits())
}

func TestMenuServiceDown(t *testing.T) {
	srv := pizzatest.New(t)
	srv.FailCatalog(http.StatusInternalServerError)

	r := run(t, "--api-url", srv.URL, "menu")
	assert.Equal(t, 1, r.code)
	assert.Contains(t, r.stderr, "status 500")
}

func TestOrderSends(t *testing.T) {
	srv := pizzatest.New(t)

	r := run(t, "--api-url", srv.URL, "order",
		"--add", "1=2", "--add", "2=1", "--add", "1=3",
		"--name", "Ada", "--zip", "1010")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Contains(t, r.stdout, "3 x Margherita")
	assert.Contains(t, r.stdout, "order sent")

	got := srv.Orders()
	require.Len(t, got, 1)
	want := model.Order{
		Name:    "Ada",
		ZipCode: "1010",
		Items:   []model.OrderLine{{ItemID: 2, Amount: 1}, {ItemID: 1, Amount: 3}},
	}
	if diff := cmp.Diff(want, got[0].Order); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestOrderDryRun(t *testing.T) {
	srv := pizzatest.New(t)

	r := run(t, "--api-url", srv.URL, "order", "--add", "2=4", "--dry-run")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Empty(t, srv.Orders())

	var got model.Order
	require.NoError(t, json.Unmarshal([]byte(r.stdout), &got))
	assert.Equal(t, model.Order{Items: []model.OrderLine{{ItemID: 2, Amount: 4}}}, got)
}

func TestOrderUnknownItem(t *testing.T) {
	srv := pizzatest.New(t)

	r := run(t, "--api-url", srv.URL, "order", "--add", "9=1")
	assert.Equal(t, 1, r.code)
	assert.Contains(t, r.stderr, "no item with id 9")
	assert.Empty(t, srv.Orders())
}

func TestOrderRejected(t *testing.T) {
	srv := pizzatest.New(t)
	srv.FailOrders(http.StatusServiceUnavailable)

	r := run(t, "--api-url", srv.URL, "order", "--add", "1=1")
	assert.Equal(t, 1, r.code)
	assert.Contains(t, r.stderr, "status 503")
}

func TestUsageErrors(t *testing.T) {
	cases := map[string][]string{
		"unknown flag":     {"menu", "--nope"},
		"stray argument":   {"menu", "extra"},
		"missing add":      {"order"},
		"malformed add":    {"order", "--add", "1"},
		"non-numeric id":   {"order", "--add", "x=1"},
		"non-numeric qty":  {"order", "--add", "1=many"},
		"unknown command":  {"bake"},
		"config extra arg": {"config", "show", "now"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			r := run(t, args...)
			assert.Equal(t, 2, r.code, r.stderr)
			assert.Contains(t, r.stderr, "Usage:")
		})
	}
}

func TestInvalidConfigOverride(t *testing.T) {
	r := run(t, "--api-url", "ftp://example.com", "menu")
	assert.Equal(t, 1, r.code)
	assert.Contains(t, r.stderr, "invalid api base_url scheme")

	r = run(t, "--theme", "sepia", "menu")
	assert.Equal(t, 1, r.code)
	assert.Contains(t, r.stderr, "invalid theme")
}

func TestConfigInitAndShow(t *testing.T) {
	for _, k := range []string{"PIZZA_API_URL", "PIZZA_TOKEN", "PIZZA_LOG_LEVEL", "PIZZA_LOG_FILE"} {
		t.Setenv(k, "")
	}
	path := filepath.Join(t.TempDir(), "conf", "pizza.yaml")
	exec := func(args ...string) (int, string, string) {
		var out, errOut bytes.Buffer
		code := Run(context.Background(), append([]string{"--config", path}, args...), &out, &errOut)
		return code, out.String(), errOut.String()
	}

	code, _, stderr := exec("--api-url", "http://pizza.local:8080", "config", "init")
	require.Equal(t, 0, code, stderr)
	_, err := os.Stat(path)
	require.NoError(t, err)

	code, _, stderr = exec("config", "init")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "already exists")

	code, _, stderr = exec("config", "init", "--force")
	assert.Equal(t, 0, code, stderr)

	t.Setenv("PIZZA_TOKEN", "secret")
	code, stdout, stderr := exec("config", "show")
	require.Equal(t, 0, code, stderr)
	assert.NotContains(t, stdout, "secret")

	var shown config.Config
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &shown))
	assert.Equal(t, "***", shown.API.Token)
	assert.Equal(t, config.DefaultConfig().API.BaseURL, shown.API.BaseURL)
}
