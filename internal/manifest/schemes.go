package manifest

import "github.com/aidanlsb/xcproj/internal/errs"

// Scheme returns the named scheme.
func (p *Project) Scheme(name string) *Scheme {
	for _, s := range p.Schemes {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// CreateScheme adds a scheme. Test bundles go to the test action, every
// other target to the build action.
func (p *Project) CreateScheme(name string, targetNames []string) (*Scheme, error) {
	if p.Scheme(name) != nil {
		return nil, errs.OperationFailed("Scheme already exists: %s", name)
	}
	targets, err := p.TargetsNamed(targetNames)
	if err != nil {
		return nil, err
	}
	s := &Scheme{Name: name}
	for _, t := range targets {
		if t.IsTest() {
			s.Test = append(s.Test, t.Name)
		} else {
			s.Build = append(s.Build, t.Name)
		}
	}
	p.Schemes = append(p.Schemes, s)
	return s, nil
}

// RemoveScheme removes the named scheme.
func (p *Project) RemoveScheme(name string) error {
	for i, s := range p.Schemes {
		if s.Name == name {
			p.Schemes = append(p.Schemes[:i], p.Schemes[i+1:]...)
			return nil
		}
	}
	return errs.NotFound("Scheme not found: %s", name)
}
