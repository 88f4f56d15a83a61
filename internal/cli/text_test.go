package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/knowdeps/pkg/locale"
	"github.com/matzehuels/knowdeps/pkg/manifest"
	"github.com/matzehuels/knowdeps/pkg/presenter"
)

func TestRunTextStopsOnCancel(t *testing.T) {
	m, err := manifest.Parse([]byte(`{"dependencies":{"a":"1","b":"2"}}`))
	if err != nil {
		t.Fatal(err)
	}
	doc := presenter.New(m, locale.English)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	e := &presenter.Enricher{
		Describer: presenter.DescriberFunc(func(ctx context.Context, name string) (string, error) {
			cancel()
			return "late", nil
		}),
		Logger: log.New(&bytes.Buffer{}),
	}

	var out bytes.Buffer
	err = runText(ctx, &out, doc, e, locale.English)
	if err == nil {
		t.Fatal("runText() returned nil after cancel")
	}
	if strings.Contains(out.String(), "late") {
		t.Errorf("result after cancel was shown:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "1. a (1)") {
		t.Errorf("initial content missing:\n%s", out.String())
	}
}
