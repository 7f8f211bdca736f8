// Package catalog declares the set of protectable API operations.
//
// The catalog is the source of truth for what the permission matrix must
// cover: membership provisioning seeds one rule per operation listed here.
// Operations are declared statically and synced into storage by natural key,
// so re-running sync against an existing database never renumbers or
// duplicates operations that already exist.
package catalog

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/taskgate/taskgate/pkg/model"
)

// Key identifies an operation by its (controller, action) natural key.
type Key struct {
	Controller string
	Action     string
}

func (k Key) String() string {
	return k.Controller + ":" + k.Action
}

// Definition declares one protectable operation.
type Definition struct {
	Controller  string
	Action      string
	Description string
}

// Key returns the operation's natural key.
func (d Definition) Key() Key {
	return Key{Controller: d.Controller, Action: d.Action}
}

// Operation keys referenced by the endpoints. Adding an endpoint means
// adding its key here and a matching Definition below.
var (
	TaskGet     = Key{"tasks", "get"}
	TaskCreate  = Key{"tasks", "create"}
	TaskUpdate  = Key{"tasks", "update"}
	TaskPatch   = Key{"tasks", "patch"}
	TaskArchive = Key{"tasks", "archive"}
	TaskList    = Key{"tasks", "list"}

	ProjectGet     = Key{"projects", "get"}
	ProjectPatch   = Key{"projects", "patch"}
	ProjectArchive = Key{"projects", "archive"}
	ProjectInvite  = Key{"projects", "invite"}

	RuleList    = Key{"rules", "list"}
	RuleReplace = Key{"rules", "replace"}

	FileGet    = Key{"files", "get"}
	FileUpload = Key{"files", "upload"}
	FileDelete = Key{"files", "delete"}
	FileList   = Key{"files", "list"}
)

// operations is the declared catalog. Order is presentation order only;
// identity is the (controller, action) pair.
var operations = []Definition{
	{"tasks", "get", "Read a task."},
	{"tasks", "create", "Create a task in a project."},
	{"tasks", "update", "Replace a task."},
	{"tasks", "patch", "Partially update a task."},
	{"tasks", "archive", "Archive a task."},
	{"tasks", "list", "List the tasks of a project."},

	{"projects", "get", "Read project details."},
	{"projects", "patch", "Partially update a project."},
	{"projects", "archive", "Archive a project."},
	{"projects", "invite", "Generate an invite token for a project."},

	{"rules", "list", "List a member's permission rules in a project."},
	{"rules", "replace", "Replace a member's permission rules in a project."},

	{"files", "get", "Download a file attachment."},
	{"files", "upload", "Upload a file attachment."},
	{"files", "delete", "Delete a file attachment."},
	{"files", "list", "List the file attachments of a project."},
}

// Definitions returns a copy of the declared catalog.
func Definitions() []Definition {
	out := make([]Definition, len(operations))
	copy(out, operations)
	return out
}

// Validate checks the declared catalog for duplicate natural keys.
func Validate() error {
	seen := make(map[Key]struct{}, len(operations))
	for _, def := range operations {
		if def.Controller == "" || def.Action == "" {
			return fmt.Errorf("catalog entry with empty natural key: %+v", def)
		}
		if _, ok := seen[def.Key()]; ok {
			return fmt.Errorf("duplicate catalog entry: %s", def.Key())
		}
		seen[def.Key()] = struct{}{}
	}
	return nil
}

// Sync upserts the declared catalog into storage by natural key. Existing
// operations keep their ids; only descriptions are refreshed. Callers must
// treat a sync failure as fatal: a partial catalog silently under-provisions
// every membership created afterwards.
func Sync(gormDB *gorm.DB) error {
	if err := Validate(); err != nil {
		return err
	}

	return gormDB.Transaction(func(tx *gorm.DB) error {
		for _, def := range operations {
			op := model.Operation{
				ID:          uuid.New(),
				Controller:  def.Controller,
				Action:      def.Action,
				Description: def.Description,
			}
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "controller"}, {Name: "action"}},
				DoUpdates: clause.AssignmentColumns([]string{"description"}),
			}).Create(&op).Error
			if err != nil {
				return fmt.Errorf("failed to sync operation %s: %w", def.Key(), err)
			}
		}
		return nil
	})
}
