package controllers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"

	"github.com/pixelcraft/studio/app/repository"
	"github.com/pixelcraft/studio/internal/pkg/billing"
	"github.com/pixelcraft/studio/internal/pkg/usercontext"
)

// PolarAPI is the part of the Polar client the billing routes use.
type PolarAPI interface {
	CreateCheckout(ctx context.Context, productIDs []string, externalCustomerID, successURL string) (*billing.PolarCheckout, error)
	CreateCustomerSession(ctx context.Context, externalCustomerID string) (*billing.PolarCustomerSession, error)
}

type BillingController struct {
	receiver   *billing.Receiver
	polar      PolarAPI
	products   *billing.ProductTable
	successURL string
	events     repository.BillingEventRepository
}

func NewBillingController(receiver *billing.Receiver, polar PolarAPI, products *billing.ProductTable, successURL string, events repository.BillingEventRepository) *BillingController {
	return &BillingController{
		receiver:   receiver,
		polar:      polar,
		products:   products,
		successURL: successURL,
		events:     events,
	}
}

// webhookErrorResponse maps receiver errors to HTTP statuses. Any non 2xx
// makes the provider redeliver.
func webhookErrorResponse(err error) (int, string) {
	switch {
	case errors.Is(err, billing.ErrSignatureInvalid):
		return fiber.StatusUnauthorized, "invalid_signature"
	case errors.Is(err, billing.ErrInvalidPayload):
		return fiber.StatusBadRequest, "invalid_payload"
	case errors.Is(err, billing.ErrMissingCustomerReference):
		return fiber.StatusUnprocessableEntity, "missing_customer_reference"
	case errors.Is(err, billing.ErrUserNotFound):
		return fiber.StatusNotFound, "user_not_found"
	case errors.Is(err, billing.ErrUnrecognizedProduct):
		return fiber.StatusUnprocessableEntity, "unrecognized_product"
	default:
		return fiber.StatusInternalServerError, "credit_grant_failed"
	}
}

// HandlePolarWebhook receives Polar webhook deliveries. It needs no session
// and no CSRF token; the signature authenticates the request.
func (bc *BillingController) HandlePolarWebhook(c *fiber.Ctx) error {
	rawBody := append([]byte(nil), c.BodyRaw()...)

	ctx, cancel := context.WithTimeout(c.UserContext(), requestTimeout)
	defer cancel()

	res, err := bc.receiver.Handle(ctx, billing.Delivery{
		ID:        c.Get("webhook-id"),
		Timestamp: c.Get("webhook-timestamp"),
		Signature: c.Get("webhook-signature"),
		Body:      rawBody,
	})
	if err != nil {
		status, code := webhookErrorResponse(err)
		if status >= fiber.StatusInternalServerError {
			fiberlog.Errorf("polar webhook %s: %v", c.Get("webhook-id"), err)
		}
		return c.Status(status).JSON(fiber.Map{"error": code, "message": err.Error()})
	}

	switch {
	case res.Duplicate:
		return c.JSON(fiber.Map{"ok": true, "duplicate": true})
	case res.Ignored:
		return c.JSON(fiber.Map{"ok": true, "ignored": true})
	default:
		return c.JSON(fiber.Map{"ok": true, "credits": res.Credits})
	}
}

type checkoutRequest struct {
	// Products are slugs or provider product ids. Empty means all packs.
	Products []string `json:"products" validate:"omitempty,max=10,dive,required"`
}

// HandleCheckout opens a Polar checkout for the logged in user.
func (bc *BillingController) HandleCheckout(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return unauthorized(c)
	}

	var req checkoutRequest
	if len(c.Body()) > 0 {
		if err := parseBody(c, &req); err != nil {
			return jsonError(c, fiber.StatusBadRequest, "invalid_request", err.Error())
		}
	}

	refs := req.Products
	if len(refs) == 0 {
		for _, p := range bc.products.Products() {
			refs = append(refs, p.ID)
		}
	}
	productIDs, err := bc.products.ResolveProductIDs(refs)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "unknown_product", err.Error())
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), requestTimeout)
	defer cancel()

	checkout, err := bc.polar.CreateCheckout(ctx, productIDs, userCtx.ExternalID, bc.successURL)
	if err != nil {
		fiberlog.Errorf("checkout for user %d: %v", userCtx.UserID, err)
		return jsonError(c, fiber.StatusBadGateway, "checkout_failed", "could not create checkout session")
	}
	return c.JSON(fiber.Map{"id": checkout.ID, "url": checkout.URL})
}

// HandlePortal returns the Polar customer portal link for the logged in user.
func (bc *BillingController) HandlePortal(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return unauthorized(c)
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), requestTimeout)
	defer cancel()

	sess, err := bc.polar.CreateCustomerSession(ctx, userCtx.ExternalID)
	if err != nil {
		fiberlog.Errorf("portal for user %d: %v", userCtx.UserID, err)
		return jsonError(c, fiber.StatusBadGateway, "portal_failed", "could not open customer portal")
	}
	return c.JSON(fiber.Map{"url": sess.CustomerPortalURL})
}

// HandleProducts lists the purchasable credit packs.
func (bc *BillingController) HandleProducts(c *fiber.Ctx) error {
	products := bc.products.Products()
	out := make([]fiber.Map, 0, len(products))
	for _, p := range products {
		out = append(out, fiber.Map{"slug": p.Slug, "productId": p.ID, "credits": p.Credits})
	}
	return c.JSON(fiber.Map{"products": out})
}

// HandleAdminBillingEvents lists recorded webhook deliveries, 50 per page.
func (bc *BillingController) HandleAdminBillingEvents(c *fiber.Ctx) error {
	const perPage = 50
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}

	events, err := bc.events.List((page-1)*perPage, perPage)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "failed to load events")
	}
	total, err := bc.events.Count()
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "failed to count events")
	}
	granted, err := bc.events.SumCreditsGranted()
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "failed to sum credits")
	}

	return c.JSON(fiber.Map{
		"events":         events,
		"page":           page,
		"total":          total,
		"creditsGranted": granted,
	})
}
