package main

import (
	"fmt"

	"github.com/xqrs/tview-listbox"
)

func run(cfg config) error {
	logger, closer, err := newLogger(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer closer.Close()

	items := tview.NewCollection(generateEntries(0, cfg.Items)...)
	options := []tview.ListBoxOption[entry]{
		tview.WithSelectionMode[entry](cfg.Mode),
		tview.WithTemplate[entry](renderEntry),
		tview.WithIdentity[entry](tview.EqualityIdentity[entry]()),
		tview.WithSelectable(func(e entry) bool {
			return !e.Section
		}),
		tview.WithLogger[entry](logger),
	}
	if cfg.Tabs {
		options = append(options, tview.WithVariant[entry](tview.VariantTabStrip))
	}
	list := tview.NewListBox(options...).SetGap(cfg.Gap).SetItemsSource(items)
	list.SetBorders(tview.BordersAll).SetBorderSet(tview.BorderSetRound()).SetTitle(" listbox-demo ")

	logger.Info("starting",
		"mode", list.SelectionMode().String(),
		"variant", list.Variant().String(),
		"items", items.Len(),
	)

	app := tview.NewApplication().SetLogger(logger)
	app.SetRoot(newDemoView(list, items, logger))
	if err := app.Run(); err != nil {
		return fmt.Errorf("run application: %w", err)
	}
	logger.Info("stopped", "selected", len(list.SelectedIndices()))
	return nil
}
