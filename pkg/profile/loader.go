package profile

import (
	"fmt"
	"os"
	"strings"

	"github.com/nikogura/resume-studio/pkg/config"
	"github.com/pkg/errors"
)

// Load reads a profile from a JSON or YAML file.
func Load(path string) (p Profile, err error) {
	var fileData []byte
	fileData, err = os.ReadFile(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to read profile file: %s", path)
		return p, err
	}

	err = config.Unmarshal(path, fileData, &p)
	if err != nil {
		err = errors.Wrapf(err, "failed to parse profile: %s", path)
		return p, err
	}

	err = p.Validate()
	if err != nil {
		err = errors.Wrap(err, "profile validation failed")
		return p, err
	}

	return p, err
}

// Validate checks that the profile is usable for generation.
func (p *Profile) Validate() (err error) {
	if strings.TrimSpace(p.Name) == "" {
		err = errors.New("profile name is required")
		return err
	}

	if strings.TrimSpace(p.Experience) == "" && len(p.Positions) == 0 {
		err = errors.New("profile experience or positions are required")
		return err
	}

	for i, position := range p.Positions {
		if position.Company == "" {
			err = errors.Errorf("position at index %d missing company", i)
			return err
		}
		if position.Role == "" {
			err = errors.Errorf("position at %s missing role", position.Company)
			return err
		}
	}

	return err
}

// ExperienceText renders free-form experience followed by each position.
func (p *Profile) ExperienceText() (text string) {
	var b strings.Builder

	if exp := strings.TrimSpace(p.Experience); exp != "" {
		b.WriteString(exp)
	}

	for _, position := range p.Positions {
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "%s, %s", position.Role, position.Company)
		if position.Dates != "" {
			fmt.Fprintf(&b, " (%s)", position.Dates)
		}
		for _, highlight := range position.Highlights {
			fmt.Fprintf(&b, "\n- %s", highlight)
		}
	}

	text = b.String()
	return text
}

// SkillsText joins skills with commas.
func (p *Profile) SkillsText() (text string) {
	text = strings.Join(p.Skills, ", ")
	return text
}
