package model

type ParamKind string

const (
	ParamText ParamKind = "text"
	// ParamPassword values are stored by TeamCity as secure values and
	// masked in build logs.
	ParamPassword ParamKind = "password"
	// ParamHidden values are plain but not shown in the run-custom-build
	// dialog.
	ParamHidden ParamKind = "hidden"
)

const readOnlySettingsParam = "teamcity.ui.settings.readOnly"

type Param struct {
	Name        string    `yaml:"name" json:"name"`
	Value       string    `yaml:"value" json:"value"`
	Kind        ParamKind `yaml:"kind" json:"kind"`
	Description string    `yaml:"description,omitempty" json:"description,omitempty"`
	// ReadOnly parameters cannot be changed from the TeamCity UI, including
	// the run-custom-build dialog.
	ReadOnly    bool      `yaml:"read_only,omitempty" json:"read_only,omitempty"`
}

// ParamBlock is an ordered list of parameters. Methods never modify the
// receiver's backing array, so blocks can be shared between projects.
type ParamBlock []Param

func (b ParamBlock) with(p Param) ParamBlock {
	out := make(ParamBlock, 0, len(b)+1)
	replaced := false
	for _, existing := range b {
		if existing.Name == p.Name {
			out = append(out, p)
			replaced = true
			continue
		}
		out = append(out, existing)
	}
	if !replaced {
		out = append(out, p)
	}
	return out
}

// Text returns a copy of the block with a text parameter set.
func (b ParamBlock) Text(name, value, description string) ParamBlock {
	return b.with(Param{Name: name, Value: value, Kind: ParamText, Description: description})
}

// ReadOnlyText returns a copy of the block with a read-only text parameter
// set.
func (b ParamBlock) ReadOnlyText(name, value, description string) ParamBlock {
	return b.with(Param{Name: name, Value: value, Kind: ParamText, Description: description, ReadOnly: true})
}

// Password returns a copy of the block with a password parameter set.
func (b ParamBlock) Password(name, value, description string) ParamBlock {
	return b.with(Param{Name: name, Value: value, Kind: ParamPassword, Description: description})
}

// Hidden returns a copy of the block with a hidden parameter set.
func (b ParamBlock) Hidden(name, value, description string) ParamBlock {
	return b.with(Param{Name: name, Value: value, Kind: ParamHidden, Description: description})
}

// Merge returns a copy of the block with every parameter of other applied
// in order. Parameters already present are replaced in place.
func (b ParamBlock) Merge(other ParamBlock) ParamBlock {
	out := append(ParamBlock{}, b...)
	for _, p := range other {
		out = out.with(p)
	}
	return out
}

func (b ParamBlock) Get(name string) (Param, bool) {
	for _, p := range b {
		if p.Name == name {
			return p, true
		}
	}
	return Param{}, false
}

// ReadOnlySettings marks the project as editable only through generated
// configuration.
func ReadOnlySettings() ParamBlock {
	return ParamBlock{}.ReadOnlyText(readOnlySettingsParam, "true", "Requires build configurations be edited via Kotlin")
}

// IsReadOnly reports whether the block carries the read-only settings
// policy.
func (b ParamBlock) IsReadOnly() bool {
	p, ok := b.Get(readOnlySettingsParam)
	return ok && p.Value == "true"
}
