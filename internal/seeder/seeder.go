package seeder

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Lumos-Labs-HQ/menuseed/internal/catalog"
	"github.com/Lumos-Labs-HQ/menuseed/internal/config"
	"github.com/Lumos-Labs-HQ/menuseed/internal/database"
	"github.com/Lumos-Labs-HQ/menuseed/internal/database/common"
	"github.com/fatih/color"
)

type Seeder struct {
	config *config.Config
	docs   database.DocumentStore
	files  database.FileStore
	client *http.Client
	out    io.Writer
	newID  func() string
	now    func() time.Time
}

type Option func(*Seeder)

// WithOutput redirects progress output, which goes to color.Output by default.
func WithOutput(w io.Writer) Option {
	return func(s *Seeder) { s.out = w }
}

func WithHTTPClient(client *http.Client) Option {
	return func(s *Seeder) { s.client = client }
}

func WithIDGenerator(newID func() string) Option {
	return func(s *Seeder) { s.newID = newID }
}

func New(cfg *config.Config, docs database.DocumentStore, files database.FileStore, opts ...Option) *Seeder {
	s := &Seeder{
		config: cfg,
		docs:   docs,
		files:  files,
		client: &http.Client{},
		out:    color.Output,
		newID:  common.NewID,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Seed wipes the catalog and rebuilds it from data. It never fails: an
// unexpected error (or panic) stops the remaining steps and is logged and
// recorded on the report.
func (s *Seeder) Seed(ctx context.Context, data *catalog.Dataset) (report *Report) {
	report = &Report{}
	start := s.now()

	defer func() {
		if r := recover(); r != nil {
			report.Err = fmt.Errorf("panic: %v", r)
		}
		report.Duration = time.Since(start)
		if report.Err != nil {
			s.fail("❌ Seeding failed: %v", report.Err)
			return
		}
		s.success("\n✅ Seeding complete.")
	}()

	report.Err = s.run(ctx, data, report)
	return report
}

// Run is Seed without the top-level catch: the terminating error is returned.
func (s *Seeder) Run(ctx context.Context, data *catalog.Dataset) (*Report, error) {
	report := &Report{}
	start := s.now()
	report.Err = s.run(ctx, data, report)
	report.Duration = time.Since(start)
	return report, report.Err
}

func (s *Seeder) run(ctx context.Context, data *catalog.Dataset, report *Report) error {
	s.info("🌱 Starting database seeding...")

	report.Cleared = s.ClearAll(ctx)
	if err := ctx.Err(); err != nil {
		return err
	}

	dbID := s.config.Database.DatabaseID
	collections := s.config.Collections

	// name -> document id, only valid for this run
	categoryIDs := make(map[string]string, len(data.Categories))
	for _, cat := range data.Categories {
		doc, err := s.docs.CreateDocument(ctx, dbID, collections.Categories, s.newID(), cat.Fields())
		if err != nil {
			return fmt.Errorf("failed to create category %q: %w", cat.Name, err)
		}
		categoryIDs[cat.Name] = doc.ID
		report.Categories++
	}
	s.success("✅ Created %d categories", report.Categories)

	customizationIDs := make(map[string]string, len(data.Customizations))
	for _, cus := range data.Customizations {
		doc, err := s.docs.CreateDocument(ctx, dbID, collections.Customizations, s.newID(), cus.Fields())
		if err != nil {
			return fmt.Errorf("failed to create customization %q: %w", cus.Name, err)
		}
		customizationIDs[cus.Name] = doc.ID
		report.Customizations++
	}
	s.success("✅ Created %d customizations", report.Customizations)

	for _, item := range data.Menu {
		if err := s.seedMenuItem(ctx, item, categoryIDs, customizationIDs, report); err != nil {
			return err
		}
	}
	s.success("✅ Created %d menu items with %d customization links", report.MenuItems, report.Links)

	return nil
}

func (s *Seeder) seedMenuItem(ctx context.Context, item catalog.MenuItem, categoryIDs, customizationIDs map[string]string, report *Report) error {
	categoryID, ok := categoryIDs[item.CategoryName]
	if !ok {
		s.warn(report, "Skipping %s - missing category %s", item.Name, item.CategoryName)
		return nil
	}

	imageURL, err := s.UploadImage(ctx, item.ImageURL)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		s.fail("❌ Failed to upload image %s: %v", item.ImageURL, err)
		s.warn(report, "Skipping %s - image upload failed", item.Name)
		return nil
	}
	report.Images++

	dbID := s.config.Database.DatabaseID
	collections := s.config.Collections

	doc, err := s.docs.CreateDocument(ctx, dbID, collections.Menu, s.newID(), item.Fields(categoryID, imageURL))
	if err != nil {
		return fmt.Errorf("failed to create menu item %q: %w", item.Name, err)
	}
	report.MenuItems++
	s.info("  🍽️  %s", item.Name)

	for _, name := range item.Customizations {
		customizationID, ok := customizationIDs[name]
		if !ok {
			s.warn(report, "Skipping customization %q for %s", name, item.Name)
			continue
		}

		if _, err := s.docs.CreateDocument(ctx, dbID, collections.MenuCustomizations, s.newID(), catalog.LinkFields(doc.ID, customizationID)); err != nil {
			return fmt.Errorf("failed to link %q to %q: %w", item.Name, name, err)
		}
		report.Links++
	}

	return nil
}

func (s *Seeder) info(format string, args ...interface{}) {
	color.New(color.FgCyan).Fprintf(s.out, format+"\n", args...)
}

func (s *Seeder) success(format string, args ...interface{}) {
	color.New(color.FgGreen).Fprintf(s.out, format+"\n", args...)
}

func (s *Seeder) fail(format string, args ...interface{}) {
	color.New(color.FgRed).Fprintf(s.out, format+"\n", args...)
}

func (s *Seeder) warn(report *Report, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	report.Warnings = append(report.Warnings, msg)
	color.New(color.FgYellow).Fprintf(s.out, "⚠️  %s\n", msg)
}
