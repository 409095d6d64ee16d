package telegram

import (
	"context"

	"github.com/Freeeeeet/interview_scheduler/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

type BotController struct {
	bot    *bot.Bot
	slots  *service.SlotService
	logger *zap.Logger
}

// New создаёт бота и контроллер. Неизвестные сообщения получают подсказку со справкой.
func New(token string, slots *service.SlotService, logger *zap.Logger) (*BotController, error) {
	c := &BotController{
		slots:  slots,
		logger: logger,
	}

	b, err := bot.New(token, bot.WithDefaultHandler(c.handleDefault))
	if err != nil {
		return nil, err
	}
	c.bot = b

	return c, nil
}

// RegisterHandlers регистрирует обработчики команд и меню
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypePrefix, c.handleCommand)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypePrefix, c.handleCommand)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/window", bot.MatchTypePrefix, c.handleCommand)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/availability", bot.MatchTypePrefix, c.handleCommand)

	return c.setCommands(ctx)
}

func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "start", Description: "Начать работу"},
		{Command: "help", Description: "Справка по командам"},
		{Command: "window", Description: "Текущее окно бронирования"},
		{Command: "availability", Description: "Общие свободные часы: <candidate_id> <employee_ids>"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})
	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("Bot commands menu set")
	return nil
}

// Start блокируется до отмены ctx
func (c *BotController) Start(ctx context.Context) {
	c.logger.Info("Starting bot")
	c.bot.Start(ctx)
}

func (c *BotController) handleCommand(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	c.sendMessage(ctx, b, update.Message.Chat.ID, c.Reply(ctx, update.Message.Text))
}

func (c *BotController) handleDefault(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}
	c.sendMessage(ctx, b, update.Message.Chat.ID, unknownCommandText)
}

func (c *BotController) sendMessage(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		c.logger.Error("Failed to send message", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}
