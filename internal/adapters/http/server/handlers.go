package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	loggeradapter "tradesim/internal/adapters/logger"
	"tradesim/internal/application/feed"
	"tradesim/internal/application/selector"
	"tradesim/internal/application/swap"
	"tradesim/internal/domain/price"
	"tradesim/internal/domain/trade"
	"tradesim/internal/domain/wallet"
	httpports "tradesim/internal/ports/http"
)

// HandlerAdapter adapts the application services to HTTP handlers
type HandlerAdapter struct {
	feed       httpports.FeedService
	swap       httpports.SwapController
	selector   httpports.SelectorDialog
	wallet     httpports.WalletService
	onboarding httpports.OnboardingStore
	logger     *loggeradapter.Logger
}

func NewHandlerAdapter(
	feedService httpports.FeedService,
	swapController httpports.SwapController,
	selectorDialog httpports.SelectorDialog,
	walletService httpports.WalletService,
	onboarding httpports.OnboardingStore,
	logger *loggeradapter.Logger,
) *HandlerAdapter {
	if logger == nil {
		logger = loggeradapter.NewNopLogger()
	}
	return &HandlerAdapter{
		feed:       feedService,
		swap:       swapController,
		selector:   selectorDialog,
		wallet:     walletService,
		onboarding: onboarding,
		logger:     logger,
	}
}

func errorJSON(c echo.Context, status int, message string) error {
	return c.JSON(status, httpports.ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
	})
}

func badRequest(c echo.Context, message string) error {
	return errorJSON(c, http.StatusBadRequest, message)
}

func parseSide(c echo.Context) (swap.Side, error) {
	return swap.ParseSide(c.Param("side"))
}

// HealthCheck handles GET /health
func (h *HandlerAdapter) HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// GetFeed handles GET /api/v1/feed
func (h *HandlerAdapter) GetFeed(c echo.Context) error {
	return c.JSON(http.StatusOK, httpports.ToHTTPFeed(h.feed.Snapshot()))
}

// RefreshFeed handles POST /api/v1/feed/refresh. An unavailable upstream is reported
// in the body; the catalog keeps its previous values.
func (h *HandlerAdapter) RefreshFeed(c echo.Context) error {
	snap, err := h.feed.Refresh(c.Request().Context())
	if err != nil && !errors.Is(err, price.ErrFeedUnavailable) {
		if errors.Is(err, feed.ErrStopped) {
			return errorJSON(c, http.StatusServiceUnavailable, err.Error())
		}
		h.logger.Warn("Feed refresh failed", zap.Error(err))
		return errorJSON(c, http.StatusGatewayTimeout, err.Error())
	}
	return c.JSON(http.StatusOK, httpports.ToHTTPFeed(snap))
}

// GetTokens handles GET /api/v1/tokens
func (h *HandlerAdapter) GetTokens(c echo.Context) error {
	return c.JSON(http.StatusOK, httpports.ToHTTPTokens(h.swap.Catalog()))
}

// GetSwap handles GET /api/v1/swap
func (h *HandlerAdapter) GetSwap(c echo.Context) error {
	return c.JSON(http.StatusOK, httpports.ToHTTPSwap(h.swap.View()))
}

// SetAmount handles PUT /api/v1/swap/amount
func (h *HandlerAdapter) SetAmount(c echo.Context) error {
	var req httpports.AmountRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	if err := h.swap.SetAmount(req.Amount); err != nil {
		if errors.Is(err, swap.ErrInvalidInput) {
			return errorJSON(c, http.StatusUnprocessableEntity, "amount must be an unsigned decimal number")
		}
		return h.internalError(c, "Set amount failed", err)
	}
	return c.JSON(http.StatusOK, httpports.ToHTTPSwap(h.swap.View()))
}

// SelectToken handles PUT /api/v1/swap/:side
func (h *HandlerAdapter) SelectToken(c echo.Context) error {
	side, err := parseSide(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	var req httpports.SelectRequest
	if err := c.Bind(&req); err != nil || req.TokenID == "" {
		return badRequest(c, "token_id is required")
	}

	if err := h.swap.Select(side, req.TokenID); err != nil {
		return h.selectionError(c, err)
	}
	return c.JSON(http.StatusOK, httpports.ToHTTPSwap(h.swap.View()))
}

// CycleToken handles POST /api/v1/swap/:side/cycle
func (h *HandlerAdapter) CycleToken(c echo.Context) error {
	side, err := parseSide(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	var req httpports.CycleRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	var moved bool
	switch {
	case req.Swipe != "":
		moved, err = h.swap.Swipe(side, swap.SwipeDirection(req.Swipe))
	case req.DeltaY != nil:
		moved, err = h.swap.Wheel(side, *req.DeltaY)
	case req.Direction != 0:
		moved, err = h.swap.Cycle(side, req.Direction)
	default:
		return badRequest(c, "one of direction, delta_y or swipe is required")
	}
	if err != nil {
		if errors.Is(err, swap.ErrInvalidInput) {
			return badRequest(c, err.Error())
		}
		return h.internalError(c, "Cycle failed", err)
	}

	return c.JSON(http.StatusOK, httpports.CycleResponse{
		Moved: moved,
		Swap:  httpports.ToHTTPSwap(h.swap.View()),
	})
}

// GetPreview handles GET /api/v1/swap/:side/preview
func (h *HandlerAdapter) GetPreview(c echo.Context) error {
	side, err := parseSide(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	p, err := h.swap.Preview(side)
	if err != nil {
		return h.internalError(c, "Preview failed", err)
	}
	return c.JSON(http.StatusOK, httpports.ToHTTPPreview(p))
}

// ConfirmTrade handles POST /api/v1/swap/confirm
func (h *HandlerAdapter) ConfirmTrade(c echo.Context) error {
	receipt, err := h.swap.Confirm()
	if err != nil {
		switch {
		case errors.Is(err, trade.ErrPreconditionFailed):
			return errorJSON(c, http.StatusConflict, trade.UserMessage(err))
		case errors.Is(err, swap.ErrTradeInProgress):
			return errorJSON(c, http.StatusConflict, err.Error())
		default:
			return h.internalError(c, "Confirm failed", err)
		}
	}

	return c.JSON(http.StatusOK, httpports.ConfirmResponse{
		Receipt: httpports.ToHTTPReceipt(receipt),
		Swap:    httpports.ToHTTPSwap(h.swap.View()),
	})
}

// OpenSelector handles POST /api/v1/selector/:side
func (h *HandlerAdapter) OpenSelector(c echo.Context) error {
	side, err := parseSide(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	if err := h.selector.Open(side); err != nil {
		return badRequest(c, err.Error())
	}
	return c.JSON(http.StatusOK, httpports.ToHTTPSelector(c.Request().Context(), h.selector))
}

// CloseSelector handles DELETE /api/v1/selector
func (h *HandlerAdapter) CloseSelector(c echo.Context) error {
	h.selector.Close()
	return c.JSON(http.StatusOK, httpports.ToHTTPSelector(c.Request().Context(), h.selector))
}

// GetSelector handles GET /api/v1/selector
func (h *HandlerAdapter) GetSelector(c echo.Context) error {
	return c.JSON(http.StatusOK, httpports.ToHTTPSelector(c.Request().Context(), h.selector))
}

// SetSelectorQuery handles PUT /api/v1/selector/query
func (h *HandlerAdapter) SetSelectorQuery(c echo.Context) error {
	var req httpports.QueryRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	h.selector.SetQuery(req.Query)
	return c.JSON(http.StatusOK, httpports.ToHTTPSelector(c.Request().Context(), h.selector))
}

// SetSelectorCategory handles PUT /api/v1/selector/category
func (h *HandlerAdapter) SetSelectorCategory(c echo.Context) error {
	var req httpports.CategoryRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := h.selector.SetCategory(selector.Category(req.Category)); err != nil {
		if errors.Is(err, selector.ErrUnknownCategory) {
			return badRequest(c, err.Error())
		}
		return h.internalError(c, "Set category failed", err)
	}
	return c.JSON(http.StatusOK, httpports.ToHTTPSelector(c.Request().Context(), h.selector))
}

// SelectFromSelector handles POST /api/v1/selector/select
func (h *HandlerAdapter) SelectFromSelector(c echo.Context) error {
	var req httpports.SelectRequest
	if err := c.Bind(&req); err != nil || req.TokenID == "" {
		return badRequest(c, "token_id is required")
	}

	if err := h.selector.Select(req.TokenID); err != nil {
		if errors.Is(err, selector.ErrDialogClosed) {
			return errorJSON(c, http.StatusConflict, err.Error())
		}
		return h.selectionError(c, err)
	}
	return c.JSON(http.StatusOK, httpports.ToHTTPSwap(h.swap.View()))
}

// ToggleFavorite handles POST /api/v1/favorites/:tokenID
func (h *HandlerAdapter) ToggleFavorite(c echo.Context) error {
	tokenID := c.Param("tokenID")
	favorite, err := h.selector.ToggleFavorite(c.Request().Context(), tokenID)
	if err != nil {
		return h.selectionError(c, err)
	}
	return c.JSON(http.StatusOK, httpports.FavoriteResponse{TokenID: tokenID, Favorite: favorite})
}

// GetWallet handles GET /api/v1/wallet
func (h *HandlerAdapter) GetWallet(c echo.Context) error {
	return c.JSON(http.StatusOK, httpports.ToHTTPWallet(h.wallet.IsConnected(), h.wallet.Address(), h.wallet.ChainID()))
}

// ConnectWallet handles POST /api/v1/wallet
func (h *HandlerAdapter) ConnectWallet(c echo.Context) error {
	if _, err := h.wallet.Connect(c.Request().Context()); err != nil {
		switch {
		case errors.Is(err, wallet.ErrProviderMissing):
			return errorJSON(c, http.StatusServiceUnavailable, "Please install a wallet to connect.")
		case errors.Is(err, wallet.ErrWrongNetwork):
			return errorJSON(c, http.StatusConflict, "Please switch your wallet to Ethereum mainnet.")
		case errors.Is(err, wallet.ErrNoAccounts):
			return errorJSON(c, http.StatusConflict, "Your wallet did not share any account.")
		case errors.Is(err, wallet.ErrInvalidAddress):
			return errorJSON(c, http.StatusBadGateway, err.Error())
		default:
			h.logger.Warn("Wallet connection failed", zap.Error(err))
			return errorJSON(c, http.StatusBadGateway, err.Error())
		}
	}
	return c.JSON(http.StatusOK, httpports.ToHTTPWallet(h.wallet.IsConnected(), h.wallet.Address(), h.wallet.ChainID()))
}

// DisconnectWallet handles DELETE /api/v1/wallet
func (h *HandlerAdapter) DisconnectWallet(c echo.Context) error {
	if err := h.wallet.Disconnect(c.Request().Context()); err != nil {
		return h.internalError(c, "Wallet disconnect failed", err)
	}
	return c.JSON(http.StatusOK, httpports.ToHTTPWallet(false, "", h.wallet.ChainID()))
}

// GetOnboarding handles GET /api/v1/onboarding
func (h *HandlerAdapter) GetOnboarding(c echo.Context) error {
	seen, err := h.onboarding.HasSeenOnboarding(c.Request().Context())
	if err != nil {
		return h.internalError(c, "Failed to read onboarding flag", err)
	}
	return c.JSON(http.StatusOK, httpports.Onboarding{Seen: seen})
}

// SetOnboarding handles PUT /api/v1/onboarding
func (h *HandlerAdapter) SetOnboarding(c echo.Context) error {
	var req httpports.Onboarding
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := h.onboarding.SetSeenOnboarding(c.Request().Context(), req.Seen); err != nil {
		return h.internalError(c, "Failed to store onboarding flag", err)
	}
	return c.JSON(http.StatusOK, req)
}

func (h *HandlerAdapter) selectionError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, swap.ErrUnknownToken):
		return errorJSON(c, http.StatusNotFound, err.Error())
	case errors.Is(err, swap.ErrUnknownSide):
		return badRequest(c, err.Error())
	default:
		return h.internalError(c, "Token selection failed", err)
	}
}

func (h *HandlerAdapter) internalError(c echo.Context, msg string, err error) error {
	h.logger.WithFields(
		zap.String("method", c.Request().Method),
		zap.String("route", c.Path()),
	).Error(msg, zap.Error(err))
	return errorJSON(c, http.StatusInternalServerError, err.Error())
}
