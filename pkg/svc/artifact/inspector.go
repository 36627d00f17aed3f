package artifact

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
)

// Role is the declared structural role of a compiled module.
type Role int

// Structural roles a module can declare.
const (
	// RoleNone marks a module without a special structural role.
	RoleNone Role = iota
	// RoleSupervisor marks a supervisor-like module. Supervisors always
	// upgrade via a supervisor update, regardless of other attributes.
	RoleSupervisor
)

// String returns the descriptor spelling of the role.
func (r Role) String() string {
	if r == RoleSupervisor {
		return "supervisor"
	}

	return "none"
}

// Metadata is the attribute table extracted from one compiled module.
type Metadata struct {
	// Role is the module's declared structural role.
	Role Role
	// HasMigrationHook reports whether the module exports a state-migration
	// hook to run across a code change.
	HasMigrationHook bool
	// DependsOn lists the module names this module declares as migration
	// ordering dependencies, in declaration order.
	DependsOn []string
}

// Inspector extracts declared attributes from a compiled module file. It is
// a pure reader with no side effects.
type Inspector interface {
	Inspect(path string) (Metadata, error)
}

// Module image layout understood by the shipped inspector: a 4-byte magic,
// a uvarint attribute-table length, the JSON attribute table, then the
// opaque code body.
var moduleImageMagic = []byte("MODC")

// imageAttributes is the JSON attribute table embedded in a module image.
type imageAttributes struct {
	Name          string   `json:"name"`
	Role          string   `json:"role,omitempty"`
	MigrationHook bool     `json:"migration_hook,omitempty"`
	DependsOn     []string `json:"depends_on,omitempty"`
}

// ModuleImageInspector reads metadata from module image files.
type ModuleImageInspector struct{}

// NewModuleImageInspector constructs the default inspector.
func NewModuleImageInspector() ModuleImageInspector {
	return ModuleImageInspector{}
}

// Inspect parses the attribute table of the module image at path. It fails
// with ErrUnreadableArtifact when the file is missing, truncated, or carries
// a malformed attribute table.
func (ModuleImageInspector) Inspect(path string) (Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Metadata{}, fmt.Errorf("%w: reading %s: %w", ErrUnreadableArtifact, path, err)
	}

	if !bytes.HasPrefix(data, moduleImageMagic) {
		return Metadata{}, fmt.Errorf("%w: %s: missing module image magic", ErrUnreadableArtifact, path)
	}

	rest := data[len(moduleImageMagic):]

	attrLen, n := binary.Uvarint(rest)
	if n <= 0 || attrLen > uint64(len(rest)-n) {
		return Metadata{}, fmt.Errorf("%w: %s: truncated attribute table", ErrUnreadableArtifact, path)
	}

	var attrs imageAttributes

	err = json.Unmarshal(rest[n:n+int(attrLen)], &attrs)
	if err != nil {
		return Metadata{}, fmt.Errorf("%w: %s: parsing attribute table: %w", ErrUnreadableArtifact, path, err)
	}

	metadata := Metadata{
		HasMigrationHook: attrs.MigrationHook,
		DependsOn:        attrs.DependsOn,
	}

	switch attrs.Role {
	case "", "none":
		metadata.Role = RoleNone
	case "supervisor":
		metadata.Role = RoleSupervisor
	default:
		return Metadata{}, fmt.Errorf(
			"%w: %s: unknown structural role %q", ErrUnreadableArtifact, path, attrs.Role,
		)
	}

	return metadata, nil
}

// WriteModuleImage renders a module image with the given attributes and body.
// It exists for fixtures and tooling; the generator itself only reads images.
func WriteModuleImage(path string, attrs Metadata, name string, body []byte) error {
	table, err := json.Marshal(imageAttributes{
		Name:          name,
		Role:          attrs.Role.String(),
		MigrationHook: attrs.HasMigrationHook,
		DependsOn:     attrs.DependsOn,
	})
	if err != nil {
		return fmt.Errorf("encoding attribute table for %s: %w", path, err)
	}

	var buf bytes.Buffer

	buf.Write(moduleImageMagic)

	var lenBuf [binary.MaxVarintLen64]byte

	buf.Write(lenBuf[:binary.PutUvarint(lenBuf[:], uint64(len(table)))])
	buf.Write(table)
	buf.Write(body)

	err = os.WriteFile(path, buf.Bytes(), 0o644)
	if err != nil {
		return fmt.Errorf("writing module image %s: %w", path, err)
	}

	return nil
}
