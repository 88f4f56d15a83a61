package presenter_test

import (
	"context"
	"fmt"

	"github.com/matzehuels/knowdeps/pkg/locale"
	"github.com/matzehuels/knowdeps/pkg/manifest"
	"github.com/matzehuels/knowdeps/pkg/presenter"
)

func ExampleEnricher_Run() {
	m, _ := manifest.Parse([]byte(`{"dependencies":{"left-pad":"1.0.0"},"devDependencies":{}}`))
	doc := presenter.New(m, locale.English)

	e := &presenter.Enricher{
		Describer: presenter.DescriberFunc(func(ctx context.Context, name string) (string, error) {
			return "String left pad", nil
		}),
	}

	var c presenter.Collector
	_ = e.Run(context.Background(), doc, &c)

	for _, ev := range c.Section(presenter.SectionRuntime) {
		if ev.Kind == presenter.EventResolved {
			fmt.Println(ev.Entry.Label())
			fmt.Println(ev.Entry.Description)
			fmt.Println(ev.Entry.PackageURL)
		}
	}
	fmt.Println(len(c.Section(presenter.SectionDev)), "dev event")
	// Output:
	// left-pad (1.0.0)
	// String left pad
	// https://www.npmjs.com/package/left-pad
	// 1 dev event
}
