package manifest

import "github.com/aidanlsb/xcproj/internal/errs"

// Package returns the package with the given url.
func (p *Project) Package(url string) *Package {
	for _, pkg := range p.Packages {
		if pkg.URL == url {
			return pkg
		}
	}
	return nil
}

// AddPackage registers a remote package.
func (p *Project) AddPackage(url, requirement string) (*Package, error) {
	if p.Package(url) != nil {
		return nil, errs.OperationFailed("Package already added: %s", url)
	}
	pkg := &Package{URL: url, Requirement: requirement}
	p.Packages = append(p.Packages, pkg)
	return pkg, nil
}

// LinkProduct links a package product into t.
func (p *Project) LinkProduct(t *Target, url, product string) error {
	if p.Package(url) == nil {
		return errs.NotFound("Package not found: %s", url)
	}
	for _, pp := range t.Packages {
		if pp.Package == url && pp.Product == product {
			return errs.OperationFailed("Target %s already links %s", t.Name, product)
		}
	}
	t.Packages = append(t.Packages, &PackageProduct{Package: url, Product: product})
	return nil
}

// RemovePackage removes a package and every product linked from it.
func (p *Project) RemovePackage(url string) error {
	if p.Package(url) == nil {
		return errs.NotFound("Package not found: %s", url)
	}
	kept := p.Packages[:0]
	for _, pkg := range p.Packages {
		if pkg.URL != url {
			kept = append(kept, pkg)
		}
	}
	p.Packages = kept

	for _, t := range p.Targets {
		products := t.Packages[:0]
		for _, pp := range t.Packages {
			if pp.Package != url {
				products = append(products, pp)
			}
		}
		t.Packages = products
	}
	return nil
}
