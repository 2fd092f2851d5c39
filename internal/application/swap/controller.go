package swap

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"tradesim/internal/adapters/logger"
	"tradesim/internal/domain/catalog"
	"tradesim/internal/domain/token"
	"tradesim/internal/domain/trade"
	"tradesim/internal/domain/wallet"
)

var (
	ErrInvalidInput    = errors.New("invalid amount input")
	ErrUnknownToken    = errors.New("unknown token")
	ErrUnknownSide     = errors.New("unknown side")
	ErrTradeInProgress = errors.New("a trade confirmation is still on display")
	ErrCatalogTooSmall = errors.New("catalog needs at least two tokens")
	ErrDisposed        = errors.New("swap controller disposed")
)

type Side string

const (
	SideFrom Side = "from"
	SideTo   Side = "to"
)

func ParseSide(s string) (Side, error) {
	switch Side(s) {
	case SideFrom, SideTo:
		return Side(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSide, s)
	}
}

type State string

const (
	StateIdle       State = "idle"
	StateEditing    State = "editing"
	StateConfirming State = "confirming"
	StateSuccess    State = "success"
)

type SwipeDirection string

const (
	SwipeLeft  SwipeDirection = "left"
	SwipeRight SwipeDirection = "right"
)

// Receipt describes a simulated trade while its success message is shown.
type Receipt struct {
	ID         string
	AmountFrom string
	AmountTo   string
	FromSymbol string
	ToSymbol   string
	USDValue   decimal.Decimal
	At         time.Time
}

// View is the render state of the widget. Derived fields are recomputed on every call.
type View struct {
	State           State
	From            token.Token
	To              token.Token
	AmountFrom      string
	AmountTo        string
	USDValue        decimal.Decimal
	ButtonLabel     string
	WalletConnected bool
	Receipt         *Receipt
}

// Preview holds the entries shown around a side's current token.
type Preview struct {
	Previous token.Token
	Current  token.Token
	Next     token.Token
}

// Timer is the part of *time.Timer the controller uses.
type Timer interface {
	Stop() bool
}

type Options struct {
	CycleCooldown   time.Duration
	SuccessDuration time.Duration
	WheelThreshold  float64
	Clock           func() time.Time
	AfterFunc       func(d time.Duration, f func()) Timer
	NewID           func() string
	Logger          *logger.Logger
}

// Controller owns the swap widget state: the two selections, the typed amount and
// the confirmation lifecycle.
type Controller struct {
	mu sync.Mutex

	wallet          wallet.Capability
	cycleCooldown   time.Duration
	successDuration time.Duration
	wheelThreshold  float64
	now             func() time.Time
	afterFunc       func(d time.Duration, f func()) Timer
	newID           func() string
	logger          *logger.Logger

	catalog      catalog.Catalog
	fromID       string
	toID         string
	amountFrom   string
	state        State
	receipt      *Receipt
	lastCycle    map[Side]time.Time
	successTimer Timer
	successGen   uint64
	disposed     bool
}

// NewController starts with the first catalog entry on the from side and the second
// on the to side. A nil wallet is treated as never connected.
func NewController(cat catalog.Catalog, w wallet.Capability, opts Options) (*Controller, error) {
	if len(cat) < 2 {
		return nil, ErrCatalogTooSmall
	}

	if opts.CycleCooldown <= 0 {
		opts.CycleCooldown = 150 * time.Millisecond
	}
	if opts.SuccessDuration <= 0 {
		opts.SuccessDuration = 2 * time.Second
	}
	if opts.WheelThreshold <= 0 {
		opts.WheelThreshold = 10
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.AfterFunc == nil {
		opts.AfterFunc = func(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	if opts.Logger == nil {
		opts.Logger = logger.NewNopLogger()
	}

	return &Controller{
		wallet:          w,
		cycleCooldown:   opts.CycleCooldown,
		successDuration: opts.SuccessDuration,
		wheelThreshold:  opts.WheelThreshold,
		now:             opts.Clock,
		afterFunc:       opts.AfterFunc,
		newID:           opts.NewID,
		logger:          opts.Logger.Named("swap"),
		catalog:         slices.Clone(cat),
		fromID:          cat[0].ID,
		toID:            cat[1].ID,
		state:           StateIdle,
		lastCycle:       make(map[Side]time.Time, 2),
	}, nil
}

// SetAmount stores the typed amount. Text that is not an unsigned decimal is rejected
// and leaves the state untouched.
func (c *Controller) SetAmount(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.disposed {
		return ErrDisposed
	}
	if !trade.ValidAmountText(text) {
		return fmt.Errorf("%w: %q", ErrInvalidInput, text)
	}

	c.amountFrom = text
	c.touch()
	return nil
}

// Select puts the token with the given id on side. Taking the other side's token
// pushes the other side forward to the next different entry.
func (c *Controller) Select(side Side, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.disposed {
		return ErrDisposed
	}
	if _, err := ParseSide(string(side)); err != nil {
		return err
	}
	idx := c.catalog.IndexOf(id)
	if idx < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownToken, id)
	}

	c.place(side, idx)
	c.touch()

	c.logger.Debug("token selected",
		zap.String("side", string(side)),
		zap.String("from", c.fromID),
		zap.String("to", c.toID),
	)
	return nil
}

// place sets side to catalog[idx], moving the other side off it when they collide.
func (c *Controller) place(side Side, idx int) {
	id := c.catalog[idx].ID
	switch side {
	case SideFrom:
		if id == c.toID {
			c.toID = c.catalog[c.catalog.Step(idx, 1, id)].ID
		}
		c.fromID = id
	case SideTo:
		if id == c.fromID {
			c.fromID = c.catalog[c.catalog.Step(idx, 1, id)].ID
		}
		c.toID = id
	}
}

// Cycle moves side one entry in dir, skipping the other side's token. Input arriving
// within the cooldown after an accepted cycle is dropped. It reports whether the
// selection moved.
func (c *Controller) Cycle(side Side, dir int) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.disposed {
		return false, ErrDisposed
	}
	if _, err := ParseSide(string(side)); err != nil {
		return false, err
	}
	if dir == 0 {
		return false, nil
	}

	now := c.now()
	if last, ok := c.lastCycle[side]; ok && now.Sub(last) < c.cycleCooldown {
		return false, nil
	}

	current, other := c.ids(side)
	idx := c.resolve(current)
	next := c.catalog.Step(idx, dir, other)
	if next == idx {
		return false, nil
	}

	c.place(side, next)
	c.lastCycle[side] = now
	c.touch()
	return true, nil
}

// Wheel maps a scroll delta to a cycle: down moves forward, up moves back.
func (c *Controller) Wheel(side Side, deltaY float64) (bool, error) {
	if math.Abs(deltaY) <= c.wheelThreshold {
		return false, nil
	}
	if deltaY > 0 {
		return c.Cycle(side, 1)
	}
	return c.Cycle(side, -1)
}

// Swipe maps a horizontal swipe to a cycle: left moves forward, right moves back.
func (c *Controller) Swipe(side Side, dir SwipeDirection) (bool, error) {
	switch dir {
	case SwipeLeft:
		return c.Cycle(side, 1)
	case SwipeRight:
		return c.Cycle(side, -1)
	default:
		return false, fmt.Errorf("%w: swipe %q", ErrInvalidInput, dir)
	}
}

// Preview returns the tokens around side's current selection, skipping the other side.
func (c *Controller) Preview(side Side) (Preview, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := ParseSide(string(side)); err != nil {
		return Preview{}, err
	}

	current, other := c.ids(side)
	idx := c.resolve(current)
	prev, next := c.catalog.Neighbors(idx, other)
	return Preview{
		Previous: c.catalog[prev],
		Current:  c.catalog[idx],
		Next:     c.catalog[next],
	}, nil
}

// ApplyCatalog swaps in a refreshed catalog and re-resolves both selections by id.
func (c *Controller) ApplyCatalog(cat catalog.Catalog) error {
	if len(cat) < 2 {
		return ErrCatalogTooSmall
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.disposed {
		return ErrDisposed
	}

	c.catalog = slices.Clone(cat)
	if c.catalog.IndexOf(c.fromID) < 0 {
		c.fromID = c.catalog[c.catalog.Step(len(c.catalog)-1, 1, c.toID)].ID
	}
	if c.catalog.IndexOf(c.toID) < 0 || c.toID == c.fromID {
		c.toID = c.catalog[c.catalog.Step(c.catalog.IndexOf(c.fromID), 1, c.fromID)].ID
	}
	return nil
}

// Confirm validates the trade and, on success, shows a receipt for the success
// duration before clearing the amount.
func (c *Controller) Confirm() (Receipt, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.disposed {
		return Receipt{}, ErrDisposed
	}
	if c.state == StateSuccess {
		return Receipt{}, ErrTradeInProgress
	}

	c.state = StateConfirming
	from, to := c.tokens()
	if err := trade.Validate(c.walletConnected(), c.amountFrom, from, to); err != nil {
		c.state = StateEditing
		c.logger.Info("trade rejected", zap.Error(err))
		return Receipt{}, err
	}

	receipt := Receipt{
		ID:         c.newID(),
		AmountFrom: c.amountFrom,
		AmountTo:   trade.AmountTo(c.amountFrom, from, to),
		FromSymbol: from.Symbol,
		ToSymbol:   to.Symbol,
		USDValue:   trade.USDValue(c.amountFrom, from),
		At:         c.now(),
	}
	c.state = StateSuccess
	c.receipt = &receipt

	c.successGen++
	gen := c.successGen
	c.successTimer = c.afterFunc(c.successDuration, func() { c.finishSuccess(gen) })

	c.logger.Info("trade simulated",
		zap.String("receipt", receipt.ID),
		zap.String("from", receipt.FromSymbol),
		zap.String("to", receipt.ToSymbol),
		zap.String("amount_from", receipt.AmountFrom),
		zap.String("amount_to", receipt.AmountTo),
	)
	return receipt, nil
}

func (c *Controller) finishSuccess(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.disposed || gen != c.successGen || c.state != StateSuccess {
		return
	}
	c.amountFrom = ""
	c.receipt = nil
	c.successTimer = nil
	c.state = StateEditing
}

// View renders the current state.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	from, to := c.tokens()
	usd := trade.USDValue(c.amountFrom, from)

	v := View{
		State:           c.state,
		From:            from,
		To:              to,
		AmountFrom:      c.amountFrom,
		AmountTo:        trade.AmountTo(c.amountFrom, from, to),
		USDValue:        usd,
		ButtonLabel:     trade.ButtonLabel(usd),
		WalletConnected: c.walletConnected(),
	}
	if c.receipt != nil {
		r := *c.receipt
		v.Receipt = &r
	}
	return v
}

// Catalog returns the catalog the controller currently resolves against.
func (c *Controller) Catalog() catalog.Catalog {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.catalog)
}

// Dispose stops the success timer. Later calls that change state return ErrDisposed.
func (c *Controller) Dispose() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.disposed = true
	if c.successTimer != nil {
		c.successTimer.Stop()
		c.successTimer = nil
	}
}

func (c *Controller) touch() {
	if c.state == StateIdle {
		c.state = StateEditing
	}
}

func (c *Controller) ids(side Side) (current, other string) {
	if side == SideFrom {
		return c.fromID, c.toID
	}
	return c.toID, c.fromID
}

func (c *Controller) resolve(id string) int {
	if idx := c.catalog.IndexOf(id); idx >= 0 {
		return idx
	}
	return 0
}

func (c *Controller) tokens() (from, to token.Token) {
	return c.catalog[c.resolve(c.fromID)], c.catalog[c.resolve(c.toID)]
}

func (c *Controller) walletConnected() bool {
	return c.wallet != nil && c.wallet.IsConnected()
}
