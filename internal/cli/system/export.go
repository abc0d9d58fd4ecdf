package system

import (
	"fmt"

	"github.com/julianstephens/lifestock/internal/cli"
	"github.com/julianstephens/lifestock/internal/storage"
	"github.com/julianstephens/lifestock/internal/utils"
)

type ExportCmd struct {
	Path string `arg:"" help:"File to write the JSON snapshot to."`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	snap, err := storage.Export(ctx.Store, ctx.Now())
	if err != nil {
		return err
	}
	path := utils.ExpandPath(c.Path)
	if err := storage.WriteSnapshot(path, snap); err != nil {
		return err
	}
	ctx.Printf("Exported %d items and %d reminders to %s\n", len(snap.Items), len(snap.Reminders), path)
	return nil
}

type ImportCmd struct {
	Path string `arg:"" help:"JSON snapshot written by 'lifestock export'." type:"existingfile"`
}

func (c *ImportCmd) Run(ctx *cli.Context) error {
	snap, err := storage.ReadSnapshot(utils.ExpandPath(c.Path))
	if err != nil {
		return err
	}

	items, err := ctx.Store.GetAllItems(true)
	if err != nil {
		return fmt.Errorf("failed to get items: %w", err)
	}
	if len(items) > 0 {
		return fmt.Errorf("database already holds %d items; import into a fresh database (lifestock init --force)", len(items))
	}

	if err := storage.Import(ctx.Store, snap); err != nil {
		return err
	}
	ctx.Printf("Imported %d items and %d reminders from %s\n", len(snap.Items), len(snap.Reminders), c.Path)
	return nil
}
