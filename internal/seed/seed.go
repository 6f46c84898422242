// Package seed loads data room fixtures from YAML and creates them through the
// services, so seeded data goes through the same validation as API traffic.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	models "dataroom/internal/domain/models/dataroom"
	dataroomSvc "dataroom/internal/domain/services/dataroom"
	dataroomService "dataroom/internal/service/dataroom"
)

//go:embed fixtures/sample.yaml
var sampleFixture []byte

// Fixture is the root of a seed file
type Fixture struct {
	Rooms []RoomFixture `yaml:"datarooms"`

	// baseDir resolves relative file paths
	baseDir string
}

// RoomFixture describes one data room and its tree
type RoomFixture struct {
	Name        string          `yaml:"name"`
	Description string          `yaml:"description"`
	Folders     []FolderFixture `yaml:"folders"`
	Files       []FileFixture   `yaml:"files"`
}

// FolderFixture describes a folder and its children
type FolderFixture struct {
	Name    string          `yaml:"name"`
	Folders []FolderFixture `yaml:"folders"`
	Files   []FileFixture   `yaml:"files"`
}

// FileFixture is either a PDF on disk (Path) or generated from Text
type FileFixture struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
	Text string `yaml:"text"`
}

// Parse decodes a fixture. Relative file paths resolve against baseDir.
func Parse(data []byte, baseDir string) (*Fixture, error) {
	var fx Fixture
	if err := yaml.Unmarshal(data, &fx); err != nil {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}
	for i, room := range fx.Rooms {
		if strings.TrimSpace(room.Name) == "" {
			return nil, fmt.Errorf("parse fixture: data room %d has no name", i)
		}
	}
	fx.baseDir = baseDir
	return &fx, nil
}

// Load reads a fixture file
func Load(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	return Parse(data, filepath.Dir(path))
}

// Sample returns the built-in development fixture
func Sample() *Fixture {
	fx, err := Parse(sampleFixture, "")
	if err != nil {
		panic(err)
	}
	return fx
}

// Seeder creates fixture content for one user
type Seeder struct {
	services *dataroomService.Services
	logger   *slog.Logger
}

// NewSeeder creates a new seeder
func NewSeeder(services *dataroomService.Services, logger *slog.Logger) *Seeder {
	return &Seeder{services: services, logger: logger}
}

// Result counts what Apply created
type Result struct {
	Rooms   int
	Folders int
	Files   int
	Skipped int
}

// Apply creates every room in fx for userID. Rooms the user already has by
// name are skipped, so re-running a seed is harmless.
func (s *Seeder) Apply(ctx context.Context, userID string, fx *Fixture) (*Result, error) {
	existing, err := s.services.Rooms.ListRooms(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	have := make(map[string]bool, len(existing))
	for _, r := range existing {
		have[r.Name] = true
	}

	res := &Result{}
	for _, rf := range fx.Rooms {
		if have[rf.Name] {
			s.logger.Info("data room exists, skipping", "name", rf.Name)
			res.Skipped++
			continue
		}

		req := &dataroomSvc.CreateRoomRequest{Name: rf.Name}
		if rf.Description != "" {
			desc := rf.Description
			req.Description = &desc
		}
		room, err := s.services.Rooms.CreateRoom(ctx, userID, req)
		if err != nil {
			return res, fmt.Errorf("create data room %q: %w", rf.Name, err)
		}
		res.Rooms++

		if err := s.applyFiles(ctx, userID, room, nil, rf.Files, fx.baseDir, res); err != nil {
			return res, err
		}
		if err := s.applyFolders(ctx, userID, room, nil, rf.Folders, fx.baseDir, res); err != nil {
			return res, err
		}
		s.logger.Info("seeded data room", "id", room.ID, "name", room.Name)
	}
	return res, nil
}

func (s *Seeder) applyFolders(ctx context.Context, userID string, room *models.Room, parentID *string, folders []FolderFixture, baseDir string, res *Result) error {
	for _, ff := range folders {
		folder, err := s.services.Folders.CreateFolder(ctx, userID, &dataroomSvc.CreateFolderRequest{
			RoomID:   room.ID,
			Name:     ff.Name,
			ParentID: parentID,
		})
		if err != nil {
			return fmt.Errorf("create folder %q: %w", ff.Name, err)
		}
		res.Folders++

		if err := s.applyFiles(ctx, userID, room, &folder.ID, ff.Files, baseDir, res); err != nil {
			return err
		}
		if err := s.applyFolders(ctx, userID, room, &folder.ID, ff.Folders, baseDir, res); err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) applyFiles(ctx context.Context, userID string, room *models.Room, folderID *string, files []FileFixture, baseDir string, res *Result) error {
	for _, f := range files {
		data, err := f.content(baseDir)
		if err != nil {
			return err
		}
		if _, err := s.services.Files.UploadFile(ctx, userID, &dataroomSvc.UploadFileRequest{
			RoomID:       room.ID,
			FolderID:     folderID,
			DeclaredName: f.Name,
			Data:         data,
		}); err != nil {
			return fmt.Errorf("upload %q: %w", f.Name, err)
		}
		res.Files++
	}
	return nil
}

func (f FileFixture) content(baseDir string) ([]byte, error) {
	if f.Path == "" {
		return RenderPDF(f.Text), nil
	}
	path := f.Path
	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", f.Name, err)
	}
	return data, nil
}

// Clear deletes every data room owned by userID
func (s *Seeder) Clear(ctx context.Context, userID string) (int, error) {
	rooms, err := s.services.Rooms.ListRooms(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("list rooms: %w", err)
	}
	for _, r := range rooms {
		if err := s.services.Rooms.DeleteRoom(ctx, userID, r.ID); err != nil {
			return 0, fmt.Errorf("delete data room %q: %w", r.Name, err)
		}
	}
	return len(rooms), nil
}
