package handlers

import (
	"storefront-service/internal/cart"
	"storefront-service/internal/checkout"
	"storefront-service/internal/dto"
	"storefront-service/internal/i18n"
	"storefront-service/internal/models"
	"storefront-service/internal/prefs"
	"storefront-service/internal/pricing"

	"go.uber.org/zap"
)

// presenter renders models in the language and currency of one session.
type presenter struct {
	lang i18n.Lang
	cur  pricing.Currency
}

func newPresenter(p prefs.Preferences) presenter {
	return presenter{lang: p.Language, cur: p.Currency}
}

func (p presenter) price(a pricing.Amount) string {
	s, err := pricing.Format(a, p.cur)
	if err != nil {
		// валюта из prefs уже проверена, сюда попасть не должны
		zap.L().Warn("format price failed", zap.String("currency", string(p.cur)), zap.Error(err))
		return ""
	}
	return s
}

func (p presenter) minor(a pricing.Amount) int64 {
	v, _ := a.Get(p.cur)
	return v
}

func firstImage(images []string) string {
	if len(images) == 0 {
		return ""
	}
	return images[0]
}

func (p presenter) product(m *models.Product) dto.ProductResponse {
	out := dto.ProductResponse{
		ID:             m.ID,
		Name:           m.Name.Get(p.lang),
		Description:    m.Description.Get(p.lang),
		Price:          p.minor(m.Price),
		PriceFormatted: p.price(m.Price),
		Currency:       string(p.cur),
		Images:         append([]string{}, m.Images...),
		Category:       m.Category,
		CategoryName:   i18n.CategoryName(m.Category).Get(p.lang),
		Stock:          m.Stock,
		InStock:        m.Stock > 0,
		Rating:         m.Rating,
	}
	for _, r := range m.Reviews {
		out.Reviews = append(out.Reviews, review(&r))
	}
	return out
}

func review(r *models.Review) dto.ReviewResponse {
	return dto.ReviewResponse{
		ID:        r.ID.String(),
		ProductID: r.ProductID,
		UserName:  r.UserName,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
}

func (p presenter) cart(c *cart.Cart) dto.CartResponse {
	items := c.Items()
	out := dto.CartResponse{
		Items:     make([]dto.CartItemResponse, 0, len(items)),
		ItemCount: c.ItemCount(),
		Currency:  string(p.cur),
	}
	for _, it := range items {
		out.Items = append(out.Items, dto.CartItemResponse{
			ProductID: it.Product.ID,
			Name:      it.Product.Name.Get(p.lang),
			Image:     firstImage(it.Product.Images),
			Quantity:  it.Quantity,
			Stock:     it.Product.Stock,
			UnitPrice: p.price(it.Product.Price),
			LineTotal: p.price(it.Product.Price.Mul(int64(it.Quantity))),
		})
	}
	sub := c.Subtotal()
	out.Subtotal = p.price(sub)
	out.Shipping = p.price(pricing.ShippingFee)
	out.Total = p.price(sub.Add(pricing.ShippingFee))
	return out
}

func customer(ci models.CustomerInfo) dto.CustomerRequest {
	return dto.CustomerRequest{
		FullName:     ci.FullName,
		Phone:        ci.Phone,
		State:        ci.State,
		Address:      ci.Address,
		DeliveryType: string(ci.DeliveryType),
	}
}

func (p presenter) order(o *models.Order) dto.OrderResponse {
	out := dto.OrderResponse{
		ID:             o.ID,
		Customer:       customer(o.Customer),
		Items:          make([]dto.OrderItemResponse, 0, len(o.Items)),
		Total:          p.minor(o.Total),
		TotalFormatted: p.price(o.Total),
		Currency:       string(p.cur),
		Status:         string(o.Status),
		StatusLabel:    i18n.T(p.lang, o.Status.Label()),
		NextStatuses:   []string{},
		PaymentMethod:  string(o.PaymentMethod),
		PaymentLabel:   i18n.T(p.lang, o.PaymentMethod.Label()),
		HasProof:       o.PaymentProof != nil,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
	for _, s := range o.Status.NextStatuses() {
		out.NextStatuses = append(out.NextStatuses, string(s))
	}
	for _, it := range o.Items {
		out.Items = append(out.Items, dto.OrderItemResponse{
			ProductID: it.ProductID,
			Name:      it.Name.Get(p.lang),
			Image:     it.Image,
			Quantity:  it.Quantity,
			UnitPrice: p.price(it.UnitPrice),
			LineTotal: p.price(it.LineTotal),
		})
	}
	return out
}

func (p presenter) checkout(st checkout.State, c *cart.Cart) dto.CheckoutResponse {
	out := dto.CheckoutResponse{
		Step:          int(st.Step),
		StepName:      st.Step.String(),
		CanAdvance:    st.CanAdvance,
		Customer:      customer(st.Draft.Customer),
		PaymentMethod: string(st.Draft.PaymentMethod),
		Cart:          p.cart(c),
	}
	if pr := st.Draft.Proof; pr != nil {
		out.Proof = &dto.ProofResponse{Ref: pr.Ref, FileName: pr.FileName, ContentType: pr.ContentType, Size: pr.Size}
	}
	if st.Order != nil {
		o := p.order(st.Order)
		out.Order = &o
	}
	if st.LastError != nil {
		out.Error = message(st.LastError, p.lang)
	}
	return out
}

func adminProduct(m *models.Product) dto.AdminProductResponse {
	return dto.AdminProductResponse{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Price:       pricing.Major(m.Price),
		Images:      append([]string{}, m.Images...),
		Category:    m.Category,
		Stock:       m.Stock,
		Rating:      m.Rating,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func (p presenter) settings(s *models.StoreSettings) dto.SettingsResponse {
	return dto.SettingsResponse{
		Name:            s.Name.Get(p.lang),
		Names:           s.Name,
		Logo:            s.Logo,
		PaymentMethods:  append([]string{}, s.PaymentMethods...),
		ShippingMethods: append([]string{}, s.ShippingMethods...),
		Contact:         dto.ContactResponse{Phone: s.Contact.Phone, Email: s.Contact.Email, Address: s.Contact.Address},
		ShippingFee:     pricing.ShippingFee,
	}
}
