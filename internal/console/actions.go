package console

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/muesli/reflow/truncate"
	"github.com/samber/lo"

	"github.com/diogo/captionthis/internal/api"
	"github.com/diogo/captionthis/internal/models"
	"github.com/diogo/captionthis/internal/render"
)

const idColumnWidth = 40

// row is one line of an asset table
type row struct {
	id   string
	name string
}

func (c *Console) listVideos(ctx context.Context) error {
	c.println("\n📹 Getting all videos in library...")
	c.println()

	list, err := c.svc.ListAssets(ctx, models.AssetVideo)
	if err != nil {
		return err
	}
	if !list.HasResults {
		c.println(api.FormatJSON(list.Raw))
		return nil
	}

	rows := lo.Map(list.Records, func(r models.AssetRecord, _ int) row {
		return row{id: r.ID, name: lo.Ternary(r.DisplayName == "", "N/A", r.DisplayName)}
	})
	c.printTable("Video ID", "Video Name", rows, 80)
	return nil
}

func (c *Console) listImages(ctx context.Context) error {
	c.println("\n🖼️  Getting all images in library...")
	c.println()

	list, err := c.svc.ListAssets(ctx, models.AssetImage)
	if err != nil {
		return err
	}
	if !list.HasResults {
		c.println(api.FormatJSON(list.Raw))
		return nil
	}

	c.printf("Found %d image(s)\n\n", list.Len())
	if list.Len() == 0 {
		return nil
	}
	rows := lo.Map(list.Records, func(r models.AssetRecord, _ int) row {
		return row{id: lo.Ternary(r.ID == "", "N/A", r.ID), name: r.Locator}
	})
	c.printTable("Image ID", "Image URL", rows, 120)
	return nil
}

// printTable prints two left-aligned columns, the second truncated to the terminal
func (c *Console) printTable(idHeader, nameHeader string, rows []row, rule int) {
	c.println(headingStyle.Render(fmt.Sprintf("%-*s %s", idColumnWidth, idHeader, nameHeader)))
	c.println(strings.Repeat("-", min(rule, c.width)))

	nameWidth := max(c.width-idColumnWidth-1, 10)
	for _, r := range rows {
		name := truncate.StringWithTail(r.name, uint(nameWidth), "…")
		c.printf("%-*s %s\n", idColumnWidth, r.id, name)
	}
}

func (c *Console) askStyle() (models.PromptStyle, error) {
	titles := lo.Map(models.PromptStyles(), func(s models.PromptStyle, _ int) string { return s.Title() })
	choice, err := c.prompt.Select("Caption style", titles, c.style.Title())
	if err != nil {
		return c.style, err
	}
	return models.ParsePromptStyle(choice)
}

func (c *Console) captionByLocator(ctx context.Context, kind models.AssetKind) error {
	label := "video ID"
	if kind == models.AssetImage {
		label = "image URL"
		c.println("\n🖼️  Caption an image by URL")
	} else {
		c.println("\n🎬 Caption a video by ID")
	}
	c.println()

	locator, err := c.prompt.Input("Enter " + label + ":")
	if err != nil {
		return err
	}
	locator = strings.TrimSpace(locator)
	if locator == "" {
		c.println(strings.ToUpper(label[:1]) + label[1:] + " is required.")
		return nil
	}

	style, err := c.askStyle()
	if err != nil {
		return err
	}

	outcome, err := c.svc.CaptionLocator(ctx, kind, locator, style)
	if err != nil {
		return err
	}

	body, isCaption := render.CaptionOrRaw(outcome.Result, c.render)
	if !isCaption {
		c.println(warnStyle.Render("No caption found in the response; showing the raw body"))
		c.println(body)
		return nil
	}

	c.println(captionStyle.Render(body))
	if outcome.SavedPath != "" {
		c.println(successStyle.Render("\n✅ Response saved to " + outcome.SavedPath))
	}
	if outcome.SaveErr != nil {
		c.println(warnStyle.Render("Could not save caption: " + outcome.SaveErr.Error()))
	}
	if outcome.Copied {
		c.println(successStyle.Render("📋 Copied to clipboard"))
	}
	return nil
}

func (c *Console) upload(ctx context.Context, kind models.AssetKind) error {
	noun := "video"
	if kind == models.AssetImage {
		noun = "image"
		c.println("\n🖼️  Upload an image")
	} else {
		c.println("\n📤 Upload a video")
	}
	c.println()
	c.printf("Current folder: %s\n\n", c.workDir)

	path, err := c.prompt.Input("Enter " + noun + " file path:")
	if err != nil {
		return err
	}
	path = strings.TrimSpace(path)
	if path != "" && !filepath.IsAbs(path) {
		path = filepath.Join(c.workDir, path)
	}

	info, statErr := c.fs.Stat(path)
	if path == "" || statErr != nil || info.IsDir() {
		c.println("File not found.")
		return nil
	}

	c.println(dimStyle.Render(fmt.Sprintf("Uploading %s (%s)...", filepath.Base(path), humanize.Bytes(uint64(info.Size())))))
	outcome, err := c.svc.Upload(ctx, kind, path)
	if err != nil {
		return err
	}
	c.statusNote(outcome)
	c.println(api.FormatJSON(outcome.Body))
	return nil
}

func (c *Console) deleteVideo(ctx context.Context) error {
	c.println("\n🗑️  Delete a video by ID")
	c.println()

	id, err := c.prompt.Input("Enter video ID to delete:")
	if err != nil {
		return err
	}
	if strings.TrimSpace(id) == "" {
		c.println("Video ID is required.")
		return nil
	}

	outcome, err := c.svc.DeleteVideo(ctx, id)
	if err != nil {
		return err
	}
	c.statusNote(outcome)
	c.println(api.FormatJSON(outcome.Body))
	return nil
}

// statusNote warns when the service answered with an error status
func (c *Console) statusNote(outcome *models.UploadOutcome) {
	if !outcome.IsSuccess() {
		c.println(warnStyle.Render(fmt.Sprintf("The service returned HTTP %d", outcome.StatusCode)))
	}
}
