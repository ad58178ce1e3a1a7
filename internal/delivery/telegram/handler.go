package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/yourusername/inventory-catalog-bot/internal/domain/entity"
	"github.com/yourusername/inventory-catalog-bot/internal/usecase"
	"go.uber.org/zap"
)

const maxUploadSize = 5 * 1024 * 1024

// BotHandler is the Telegram delivery surface: document uploads feed the
// ingestion pipeline, commands drive the catalog views, and plain text goes to
// the assistant.
type BotHandler struct {
	bot           *tgbotapi.BotAPI
	chatUseCase   usecase.ChatUseCase
	adminUseCase  usecase.AdminUseCase
	ingestUseCase usecase.IngestUseCase
	viewUseCase   usecase.ViewUseCase
	logger        *zap.Logger

	// Per-user browsing snapshots. Each update replaces the snapshot through
	// the ViewState transition methods.
	viewMu sync.RWMutex
	views  map[int64]entity.ViewState

	mu               sync.RWMutex
	awaitingPassword map[int64]bool
}

// NewBotHandler creates the bot.
func NewBotHandler(
	token string,
	chatUseCase usecase.ChatUseCase,
	adminUseCase usecase.AdminUseCase,
	ingestUseCase usecase.IngestUseCase,
	viewUseCase usecase.ViewUseCase,
	logger *zap.Logger,
) (*BotHandler, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	return &BotHandler{
		bot:              bot,
		chatUseCase:      chatUseCase,
		adminUseCase:     adminUseCase,
		ingestUseCase:    ingestUseCase,
		viewUseCase:      viewUseCase,
		logger:           logger,
		views:            make(map[int64]entity.ViewState),
		awaitingPassword: make(map[int64]bool),
	}, nil
}

// Start runs the update loop until the context is cancelled.
func (h *BotHandler) Start(ctx context.Context) error {
	h.logger.Info("bot started", zap.String("username", h.bot.Self.UserName))

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			h.logger.Info("bot stopping")
			return ctx.Err()
		case update := <-updates:
			if update.Message == nil {
				continue
			}
			go h.handleMessage(ctx, update.Message)
		}
	}
}

// handleMessage routes one incoming message.
func (h *BotHandler) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	userID := message.From.ID
	username := message.From.UserName
	if username == "" {
		username = message.From.FirstName
	}

	if message.Document != nil {
		h.handleDocumentMessage(ctx, message)
		return
	}

	if h.isAwaitingPassword(userID) {
		h.handlePasswordInput(ctx, message)
		return
	}

	if message.IsCommand() {
		h.handleCommand(ctx, message)
		return
	}

	if message.Text != "" {
		h.handleTextMessage(ctx, userID, username, message.Text, message.Chat.ID)
	}
}

// handleCommand dispatches bot commands.
func (h *BotHandler) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	args := strings.TrimSpace(message.CommandArguments())

	switch message.Command() {
	case "start":
		h.sendMessage(message.Chat.ID, welcomeMessage)
	case "help":
		h.sendMessage(message.Chat.ID, helpMessage)
	case "categories":
		h.handleCategoriesCommand(ctx, message, args)
	case "vendors":
		h.handleVendorsCommand(ctx, message, args)
	case "category":
		h.handleCategoryCommand(ctx, message, args)
	case "vendor":
		h.handleVendorCommand(ctx, message, args)
	case "search":
		h.handleSearchCommand(ctx, message, args)
	case "items":
		h.renderPage(ctx, message.Chat.ID, message.From.ID)
	case "page":
		h.handlePageCommand(ctx, message, args)
	case "next":
		h.handlePageStep(ctx, message, 1)
	case "prev":
		h.handlePageStep(ctx, message, -1)
	case "catalog":
		h.handleCatalogCommand(ctx, message)
	case "clear":
		h.handleClearCommand(ctx, message)
	case "history":
		h.handleHistoryCommand(ctx, message)
	case "admin":
		h.handleAdminCommand(ctx, message)
	case "logout":
		h.handleLogoutCommand(ctx, message)
	case "clean":
		h.handleCleanCommand(ctx, message)
	default:
		h.sendMessage(message.Chat.ID, "Unknown command. Try /help.")
	}
}

// handleCategoriesCommand lists category facets, narrowed by an optional
// query. The query also resets the user's category selection.
func (h *BotHandler) handleCategoriesCommand(ctx context.Context, message *tgbotapi.Message, query string) {
	if query != "" {
		h.updateView(message.From.ID, func(s entity.ViewState) entity.ViewState {
			return s.WithFacetQuery(query)
		})
	}

	categories, err := h.viewUseCase.Categories(ctx, query)
	if err != nil {
		h.sendMessage(message.Chat.ID, "Failed to list categories.")
		return
	}
	if len(categories) == 0 {
		h.sendMessage(message.Chat.ID, "No categories. Upload an inventory file first.")
		return
	}

	h.sendMessage(message.Chat.ID, fmt.Sprintf("Categories (%d):\n%s\n\nSelect one with /category <name>, or /category all.",
		len(categories), bulletList(categories)))
}

// handleVendorsCommand lists vendor facets.
func (h *BotHandler) handleVendorsCommand(ctx context.Context, message *tgbotapi.Message, query string) {
	vendors, err := h.viewUseCase.Vendors(ctx, query)
	if err != nil {
		h.sendMessage(message.Chat.ID, "Failed to list vendors.")
		return
	}
	if len(vendors) == 0 {
		h.sendMessage(message.Chat.ID, "No vendors. Upload an inventory file first.")
		return
	}

	h.sendMessage(message.Chat.ID, fmt.Sprintf("Vendors (%d):\n%s\n\nSelect one with /vendor <name>, or /vendor all.",
		len(vendors), bulletList(vendors)))
}

// handleCategoryCommand selects a category facet and shows page 1.
func (h *BotHandler) handleCategoryCommand(ctx context.Context, message *tgbotapi.Message, arg string) {
	if arg == "" {
		h.sendMessage(message.Chat.ID, "Usage: /category <name> (or /category all)")
		return
	}
	category := arg
	if strings.EqualFold(arg, "all") {
		category = entity.AllCategories
	}
	h.updateView(message.From.ID, func(s entity.ViewState) entity.ViewState {
		return s.WithCategory(category)
	})
	h.renderPage(ctx, message.Chat.ID, message.From.ID)
}

// handleVendorCommand selects a vendor facet and shows page 1.
func (h *BotHandler) handleVendorCommand(ctx context.Context, message *tgbotapi.Message, arg string) {
	if arg == "" {
		h.sendMessage(message.Chat.ID, "Usage: /vendor <name> (or /vendor all)")
		return
	}
	vendor := arg
	if strings.EqualFold(arg, "all") {
		vendor = entity.AllVendors
	}
	h.updateView(message.From.ID, func(s entity.ViewState) entity.ViewState {
		return s.WithVendor(vendor)
	})
	h.renderPage(ctx, message.Chat.ID, message.From.ID)
}

// handleSearchCommand sets (or clears) the free-text search and shows page 1.
func (h *BotHandler) handleSearchCommand(ctx context.Context, message *tgbotapi.Message, query string) {
	h.updateView(message.From.ID, func(s entity.ViewState) entity.ViewState {
		return s.WithSearch(query)
	})
	h.renderPage(ctx, message.Chat.ID, message.From.ID)
}

// handlePageCommand jumps to a page, rejecting out-of-range requests.
func (h *BotHandler) handlePageCommand(ctx context.Context, message *tgbotapi.Message, arg string) {
	page, err := strconv.Atoi(arg)
	if err != nil || page < 1 {
		h.sendMessage(message.Chat.ID, "Usage: /page <number>")
		return
	}
	h.gotoPage(ctx, message.Chat.ID, message.From.ID, page)
}

// handlePageStep moves one page forward or back.
func (h *BotHandler) handlePageStep(ctx context.Context, message *tgbotapi.Message, delta int) {
	state := h.getView(message.From.ID)
	h.gotoPage(ctx, message.Chat.ID, message.From.ID, state.Page+delta)
}

// gotoPage validates the target page against the current result set before
// committing it, so the snapshot never holds an unreachable page.
func (h *BotHandler) gotoPage(ctx context.Context, chatID, userID int64, page int) {
	view, err := h.viewUseCase.Browse(ctx, h.getView(userID))
	if err != nil {
		h.sendMessage(chatID, "Failed to browse the catalog.")
		return
	}
	if page < 1 || page > view.TotalPages {
		h.sendMessage(chatID, fmt.Sprintf("Page out of range: pick 1-%d.", view.TotalPages))
		return
	}
	h.updateView(userID, func(s entity.ViewState) entity.ViewState {
		return s.WithPage(page)
	})
	h.renderPage(ctx, chatID, userID)
}

// renderPage sends the current page of the user's view.
func (h *BotHandler) renderPage(ctx context.Context, chatID, userID int64) {
	state := h.getView(userID)
	view, err := h.viewUseCase.Browse(ctx, state)
	if err != nil {
		h.sendMessage(chatID, "Failed to browse the catalog.")
		return
	}
	if view.Total == 0 {
		h.sendMessage(chatID, "The catalog is empty. Upload an inventory file first.")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Page %d/%d - %d of %d items match\n", view.Page, view.TotalPages, view.Matched, view.Total))
	if state.Category != entity.AllCategories {
		sb.WriteString(fmt.Sprintf("Category: %s\n", state.Category))
	}
	if state.Vendor != entity.AllVendors {
		sb.WriteString(fmt.Sprintf("Vendor: %s\n", state.Vendor))
	}
	if state.Search != "" {
		sb.WriteString(fmt.Sprintf("Search: %s\n", state.Search))
	}
	sb.WriteString("\n")

	for _, p := range view.Items {
		sb.WriteString(fmt.Sprintf("#%d %s", p.ID, p.ItemID))
		if p.Description != "" {
			sb.WriteString(" - " + p.Description)
		}
		sb.WriteString("\n    " + formatPrice(p.Cost))
		if p.QtyOnHand != nil {
			sb.WriteString(fmt.Sprintf(", on hand: %.0f", *p.QtyOnHand))
		}
		if p.Vendor != "" {
			sb.WriteString(", " + p.Vendor)
		}
		sb.WriteString("\n")
	}

	if len(view.Items) == 0 {
		sb.WriteString("No items match the current filters.\n")
	} else if view.TotalPages > 1 {
		sb.WriteString("\n/next /prev /page <n> to navigate")
	}

	h.sendMessage(chatID, sb.String())
}

// handleDocumentMessage runs an uploaded spreadsheet through the ingestion
// pipeline, editing a progress message as batches complete.
func (h *BotHandler) handleDocumentMessage(ctx context.Context, message *tgbotapi.Message) {
	userID := message.From.ID

	isAdmin, _ := h.adminUseCase.IsAdmin(ctx, userID)
	if !isAdmin {
		h.sendMessage(message.Chat.ID, "Only admins can upload files. Log in with /admin first.")
		return
	}

	doc := message.Document
	if doc.FileSize > maxUploadSize {
		h.sendMessage(message.Chat.ID, "File is too large: the limit is 5MB.")
		return
	}

	data, err := h.downloadFile(doc.FileID)
	if err != nil {
		h.logger.Warn("file download failed", zap.Error(err))
		h.sendMessage(message.Chat.ID, "Failed to download the file, please try again.")
		return
	}

	progressMsg, sendErr := h.bot.Send(tgbotapi.NewMessage(message.Chat.ID, "Processing..."))
	onProgress := func(processed, total int) {
		if sendErr != nil || total == 0 {
			return
		}
		edit := tgbotapi.NewEditMessageText(message.Chat.ID, progressMsg.MessageID,
			fmt.Sprintf("Processing... %d of %d rows", processed, total))
		h.bot.Send(edit)
	}

	result, err := h.ingestUseCase.UploadCatalog(ctx, data, doc.FileName, onProgress)
	if err != nil {
		// Ingestion errors carry user-facing text; the store is untouched.
		h.sendMessage(message.Chat.ID, err.Error())
		return
	}

	_ = h.adminUseCase.RecordUpload(ctx, userID, doc.FileName, result.Loaded)

	summary := fmt.Sprintf("Catalog updated from %s.\n\nItems loaded: %d", doc.FileName, result.Loaded)
	if result.Dropped > 0 {
		summary += fmt.Sprintf("\nRows marked deleted: %d", result.Dropped)
	}
	if n := result.Diagnostics.Total(); n > 0 {
		summary += fmt.Sprintf("\nField anomalies absorbed: %d", n)
	}
	summary += "\n\n/categories to browse, or just ask me about the inventory."
	h.sendMessage(message.Chat.ID, summary)
}

// downloadFile fetches an uploaded document from Telegram.
func (h *BotHandler) downloadFile(fileID string) ([]byte, error) {
	file, err := h.bot.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, err
	}

	resp, err := http.Get(file.Link(h.bot.Token))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return io.ReadAll(resp.Body)
}

// handleTextMessage forwards plain text to the assistant.
func (h *BotHandler) handleTextMessage(ctx context.Context, userID int64, username, text string, chatID int64) {
	h.bot.Send(tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping))

	reply, err := h.chatUseCase.ProcessMessage(ctx, userID, username, text)
	if err != nil {
		h.logger.Warn("chat processing failed", zap.Int64("user_id", userID), zap.Error(err))
		h.sendMessage(chatID, "Sorry, something went wrong. Please try again.")
		return
	}

	h.sendMessage(chatID, reply)
}

// handleCatalogCommand shows catalog metadata.
func (h *BotHandler) handleCatalogCommand(ctx context.Context, message *tgbotapi.Message) {
	info, err := h.adminUseCase.CatalogInfo(ctx)
	if err != nil {
		h.sendMessage(message.Chat.ID, "No catalog loaded. Upload an inventory file first.")
		return
	}
	h.sendMessage(message.Chat.ID, info)
}

// handleClearCommand wipes the user's conversation.
func (h *BotHandler) handleClearCommand(ctx context.Context, message *tgbotapi.Message) {
	if err := h.chatUseCase.ClearHistory(ctx, message.From.ID); err != nil {
		h.sendMessage(message.Chat.ID, "Failed to clear the history.")
		return
	}
	h.sendMessage(message.Chat.ID, "Chat history cleared.")
}

// handleHistoryCommand shows the user's conversation.
func (h *BotHandler) handleHistoryCommand(ctx context.Context, message *tgbotapi.Message) {
	history, err := h.chatUseCase.GetHistory(ctx, message.From.ID)
	if err != nil {
		h.sendMessage(message.Chat.ID, "Failed to load the history.")
		return
	}
	if len(history) == 0 {
		h.sendMessage(message.Chat.ID, "Your chat history is empty.")
		return
	}

	var sb strings.Builder
	sb.WriteString("Chat history:\n\n")
	for i, msg := range history {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, msg.Text))
		if msg.Response != "" {
			sb.WriteString(fmt.Sprintf("   -> %s\n\n", msg.Response))
		}
	}
	h.sendMessage(message.Chat.ID, sb.String())
}

// handleAdminCommand starts the password prompt.
func (h *BotHandler) handleAdminCommand(ctx context.Context, message *tgbotapi.Message) {
	userID := message.From.ID

	isAdmin, _ := h.adminUseCase.IsAdmin(ctx, userID)
	if isAdmin {
		h.sendMessage(message.Chat.ID, "You are already logged in as admin.")
		return
	}

	h.setAwaitingPassword(userID, true)
	h.sendMessage(message.Chat.ID, "Enter the admin password:")
}

// handlePasswordInput consumes the password reply.
func (h *BotHandler) handlePasswordInput(ctx context.Context, message *tgbotapi.Message) {
	userID := message.From.ID
	h.setAwaitingPassword(userID, false)

	// Remove the password message from the chat.
	h.bot.Send(tgbotapi.NewDeleteMessage(message.Chat.ID, message.MessageID))

	success, err := h.adminUseCase.Login(ctx, userID, message.Text)
	if err != nil {
		h.logger.Warn("login failed", zap.Error(err))
		h.sendMessage(message.Chat.ID, "Login failed, please try again.")
		return
	}
	if !success {
		h.sendMessage(message.Chat.ID, "Wrong password.")
		return
	}

	h.sendMessage(message.Chat.ID, adminWelcomeMessage)
}

// handleLogoutCommand closes the admin session.
func (h *BotHandler) handleLogoutCommand(ctx context.Context, message *tgbotapi.Message) {
	userID := message.From.ID

	isAdmin, _ := h.adminUseCase.IsAdmin(ctx, userID)
	if !isAdmin {
		h.sendMessage(message.Chat.ID, "You are not logged in.")
		return
	}

	if err := h.adminUseCase.Logout(ctx, userID); err != nil {
		h.sendMessage(message.Chat.ID, "Logout failed.")
		return
	}
	h.sendMessage(message.Chat.ID, "Logged out.")
}

// handleCleanCommand wipes catalog and conversations (admin only).
func (h *BotHandler) handleCleanCommand(ctx context.Context, message *tgbotapi.Message) {
	if err := h.adminUseCase.CleanAll(ctx, message.From.ID); err != nil {
		h.sendMessage(message.Chat.ID, "Clean failed: admins only.")
		return
	}
	h.sendMessage(message.Chat.ID, "Catalog and chat histories cleared.")
}

// View snapshot helpers.

func (h *BotHandler) getView(userID int64) entity.ViewState {
	h.viewMu.RLock()
	defer h.viewMu.RUnlock()
	if s, ok := h.views[userID]; ok {
		return s
	}
	return entity.NewViewState()
}

func (h *BotHandler) updateView(userID int64, transition func(entity.ViewState) entity.ViewState) {
	h.viewMu.Lock()
	defer h.viewMu.Unlock()
	current, ok := h.views[userID]
	if !ok {
		current = entity.NewViewState()
	}
	h.views[userID] = transition(current)
}

func (h *BotHandler) isAwaitingPassword(userID int64) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.awaitingPassword[userID]
}

func (h *BotHandler) setAwaitingPassword(userID int64, awaiting bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if awaiting {
		h.awaitingPassword[userID] = true
	} else {
		delete(h.awaitingPassword, userID)
	}
}

func (h *BotHandler) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := h.bot.Send(msg); err != nil {
		h.logger.Warn("send failed", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

func formatPrice(cost *float64) string {
	if cost == nil {
		return "price N/A"
	}
	return fmt.Sprintf("$%.2f", *cost)
}

func bulletList(items []string) string {
	var sb strings.Builder
	for _, item := range items {
		sb.WriteString("  - " + item + "\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

const welcomeMessage = `Inventory catalog bot.

Upload an Excel inventory file (.xlsx or .xls) as an admin, then browse it:
/categories - list category facets
/vendors - list vendor facets
/search <text> - search the catalog
/items - show the current page

Or just type a question and the assistant will answer from the catalog.
/help for everything else.`

const helpMessage = `Commands:
/categories [query] - category facets, optionally narrowed
/vendors [query] - vendor facets, optionally narrowed
/category <name>|all - select a category
/vendor <name>|all - select a vendor
/search <text> - free-text search (empty to clear)
/items - current page
/page <n>, /next, /prev - pagination
/catalog - catalog info
/history, /clear - your conversation
/admin, /logout - admin login
/clean - wipe everything (admin)

Uploading a .xlsx/.xls document replaces the whole catalog (admins only).`

const adminWelcomeMessage = `Admin login OK.

Upload an Excel file (max 5MB) to replace the catalog. The first sheet is
used; the first row must contain the column headers.

/catalog - catalog info
/clean - wipe catalog and conversations
/logout - leave admin mode`
