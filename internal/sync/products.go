package sync

import (
	"context"

	"github.com/advanceapparels/tradeshow-portal/internal/apparelmagic"
	"github.com/advanceapparels/tradeshow-portal/internal/fieldmap"
	"github.com/advanceapparels/tradeshow-portal/internal/products"
	"github.com/advanceapparels/tradeshow-portal/pkg/db/models"
	"github.com/advanceapparels/tradeshow-portal/pkg/enums"
)

const maxProductImages = 25

func (s *Service) productsDescriptor() Descriptor[apparelmagic.Product] {
	return Descriptor[apparelmagic.Product]{
		Kind:    enums.SyncKindProducts,
		Fetch:   s.collection(apparelmagic.ResourceProducts),
		IDField: "product_id",
		Key:     func(p apparelmagic.Product) string { return p.ProductID.String() },
		Apply:   s.applyProduct,
	}
}

func (s *Service) applyProduct(ctx context.Context, env *Env, p apparelmagic.Product) (Outcome, error) {
	productID := p.ProductID.String()
	if productID == "" {
		return Skipped, errMissingKey
	}
	synced := env.SyncedAt
	style := p.StyleNumber.String()

	_, created, err := s.products.UpsertProduct(ctx, &models.Product{
		ProductID:    productID,
		StyleNumber:  style,
		Description:  fieldmap.Text(p.Description.String()),
		Category:     fieldmap.Text(p.Category.String()),
		Price:        fieldmap.Decimal(p.Price.String()),
		Content:      fieldmap.Text(p.Content.String()),
		Origin:       fieldmap.Text(p.Origin.String()),
		LastSyncedAt: &synced,
	})
	if err != nil {
		return Skipped, err
	}

	// Per-product endpoints degrade to empty so one bad style does not fail the run.
	colorways, err := s.erp.ProductAttributes(ctx, productID)
	if err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "product_id", productID), "colorway images unavailable")
		colorways = nil
	}
	skus, err := s.erp.ProductSKUs(ctx, productID)
	if err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "product_id", productID), "product skus unavailable")
		skus = nil
	}

	urls := collectImages(p.Images, colorways)
	images := make([]models.ProductImage, 0, len(urls))
	for i, u := range urls {
		images = append(images, models.ProductImage{ProductID: productID, ImageURL: u, SortOrder: i})
	}

	skuRows := make([]models.ProductSKU, 0, len(skus))
	for _, sku := range skus {
		id := sku.SKUID.String()
		if id == "" {
			continue
		}
		skuRows = append(skuRows, models.ProductSKU{
			SKUID:        id,
			ProductID:    productID,
			StyleNumber:  style,
			Attr2:        fieldmap.Text(sku.Attr2.String()),
			Size:         fieldmap.Text(sku.Size.String()),
			Price:        fieldmap.Decimal(sku.Price.String()),
			QtyAvailSell: fieldmap.Int(sku.QtyAvailSell.String()),
			IsActive:     true,
			LastSyncedAt: &synced,
		})
	}

	// An empty SKU response keeps the existing SKUs rather than wiping them.
	if err := s.products.ReplaceMedia(ctx, productID, images, skuRows, len(skuRows) > 0); err != nil {
		return Skipped, err
	}
	env.Count("images", len(images))
	env.Count("skus", len(skuRows))
	return outcomeOf(created), nil
}

// collectImages returns product-level images followed by colorway images,
// without duplicates and capped at maxProductImages.
func collectImages(productImages []apparelmagic.ProductImage, colorways []apparelmagic.Colorway) []string {
	seen := map[string]struct{}{}
	var out []string
	add := func(u string) {
		if u == "" || len(out) >= maxProductImages {
			return
		}
		if _, ok := seen[u]; ok {
			return
		}
		seen[u] = struct{}{}
		out = append(out, u)
	}
	for _, img := range productImages {
		add(img.Img.String())
	}
	for _, cw := range colorways {
		for _, img := range cw.Images {
			add(img.Img.String())
		}
	}
	return out
}

func (s *Service) inventoryDescriptor() Descriptor[apparelmagic.InventoryRecord] {
	return Descriptor[apparelmagic.InventoryRecord]{
		Kind:    enums.SyncKindInventory,
		Fetch:   s.collection(apparelmagic.ResourceInventory),
		IDField: "sku_id",
		Key:     func(r apparelmagic.InventoryRecord) string { return r.SKUID.String() },
		Apply: func(ctx context.Context, env *Env, r apparelmagic.InventoryRecord) (Outcome, error) {
			skuID := r.SKUID.String()
			if skuID == "" {
				return Skipped, errMissingKey
			}
			found, err := s.products.UpdateInventory(ctx, skuID, products.InventoryUpdate{
				QtyAvailSell:  fieldmap.Int(r.QtyAvailSell.String()),
				QtyInventory:  fieldmap.Int(r.QtyInventory.String()),
				QtyAlloc:      fieldmap.Int(r.QtyAlloc.String()),
				QtyAvailAlloc: fieldmap.Int(r.QtyAvailAlloc.String()),
				QtyOpenPO:     fieldmap.Int(r.QtyOpenPO.String()),
				QtyOpenSales:  fieldmap.Int(r.QtyOpenSales.String()),
				QtyPicked:     fieldmap.Int(r.QtyPicked.String()),
				Cost:          fieldmap.Decimal(r.Cost.String()),
				Location:      fieldmap.Text(r.Location.String()),
				UPC:           fieldmap.Text(r.UPCDisplay.String()),
				IsActive:      fieldmap.Flag(r.Active.String()),
				SyncedAt:      env.SyncedAt,
			})
			if err != nil {
				return Skipped, err
			}
			if !found {
				return Skipped, nil
			}
			return Updated, nil
		},
	}
}
