package catalogsync

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"promostore/internal/domain"
	"promostore/internal/vendor"
)

// ProductFromVendor maps a vendor product into the local catalog shape.
// Colors and sizes are the sorted, de-duplicated union over all variants, so
// the result does not depend on variant order. Stock is the variant sum with
// negative counts treated as zero.
func ProductFromVendor(p vendor.Product, now time.Time) domain.Product {
	colors := map[string]struct{}{}
	sizes := map[string]struct{}{}
	stock := 0
	for _, v := range p.Variants {
		if v.Color != "" {
			colors[v.Color] = struct{}{}
		}
		for _, s := range v.Sizes {
			if s != "" {
				sizes[s] = struct{}{}
			}
		}
		if v.Stock > 0 {
			stock += v.Stock
		}
	}

	options := make(domain.BrandingOptions, 0, len(p.BrandingOptions))
	for _, o := range p.BrandingOptions {
		options = append(options, domain.BrandingOption{
			Method:          o.Method,
			Cost:            o.Cost.Round(2),
			SetupFee:        o.SetupFee.Round(2),
			MinimumQuantity: o.MinimumQuantity,
		})
	}

	images := domain.StringList{}
	images = append(images, p.Images...)
	specs := domain.Specs{}
	for k, v := range p.Specifications {
		specs[k] = v
	}

	minOrder := p.MinimumOrder
	if minOrder < 1 {
		minOrder = 1
	}

	return domain.Product{
		ID:              idOrNew(p.ID),
		Name:            p.Name,
		Description:     p.Description,
		BasePrice:       p.Price.Round(2),
		Category:        p.Category,
		Brand:           p.Brand,
		Images:          images,
		Colors:          sortedKeys(colors),
		Sizes:           sortedKeys(sizes),
		StockCount:      stock,
		BrandingOptions: options,
		Specifications:  specs,
		MinimumOrder:    minOrder,
		Active:          true,
		LastUpdated:     now,
	}
}

// CategoryFromVendor keeps the vendor image and parent; the vendor has no
// ordering so every synced category sorts at 0.
func CategoryFromVendor(c vendor.Category) domain.Category {
	return domain.Category{
		ID:          idOrDerived(c.ID, "category", c.Name),
		Name:        c.Name,
		Description: c.Description,
		ImageURL:    c.ImageURL,
		ParentID:    c.ParentID,
	}
}

func BrandingMethodFromVendor(m vendor.BrandingMethod) domain.BrandingMethod {
	minQty := m.MinimumQuantity
	if minQty < 1 {
		minQty = 1
	}
	return domain.BrandingMethod{
		ID:              idOrDerived(m.ID, "branding", m.Name),
		Name:            m.Name,
		Description:     m.Description,
		BaseCost:        m.BaseCost.Round(2),
		ColorUpcharge:   m.ColorUpcharge.Round(2),
		SetupFee:        m.SetupFee.Round(2),
		MinimumQuantity: minQty,
	}
}

// idOrNew assigns a local id to products the vendor sent without one.
// Products are replaced wholesale, so a fresh id per run is harmless.
func idOrNew(id string) string {
	if id == "" {
		return uuid.NewString()
	}
	return id
}

// idOrDerived gives id-less records a stable id from their kind and name, so
// additive syncs update the same row instead of adding a copy each run.
func idOrDerived(id, kind, name string) string {
	if id != "" {
		return id
	}
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(kind+":"+name)).String()
}

func sortedKeys(set map[string]struct{}) domain.StringList {
	out := make(domain.StringList, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
