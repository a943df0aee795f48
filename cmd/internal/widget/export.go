package widget

import (
	"encoding/json"
	"os"
	"sorta/cmd/internal/domain/entity"
	"sorta/cmd/internal/domain/events"
	"sorta/cmd/internal/utils"

	"github.com/labstack/gommon/log"
)

// Data is the read-only snapshot the home-screen widget consumes.
type Data struct {
	Categories  []*entity.Category `json:"categories"`
	LastUpdated string             `json:"lastUpdated"`
}

// Exporter writes the current category set to a shared durable location
// whenever it changes. Export is one-way: the widget only ever reads.
type Exporter struct {
	path string
}

func NewExporter(path string) *Exporter {
	return &Exporter{path: path}
}

// Listen subscribes the exporter to category changes. Export failures are
// logged only: a stale widget never blocks a category edit.
func (e *Exporter) Listen(bus *events.Bus) {
	bus.Subscribe(func(event events.Event) {
		replaced, ok := event.(*events.CategoriesReplaced)
		if !ok {
			return
		}
		if err := e.Export(replaced.Categories); err != nil {
			log.Errorf("failed to export widget data: %v", err)
		}
	})
}

func (e *Exporter) Export(categories []*entity.Category) error {
	data, err := json.Marshal(&Data{
		Categories:  categories,
		LastUpdated: utils.NowISO(),
	})
	if err != nil {
		return err
	}
	return os.WriteFile(e.path, data, 0o644)
}
