package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Freeeeeet/interview_scheduler/internal/service"
	"go.uber.org/zap"
)

const (
	helpText = "Планировщик собеседований.\n\n" +
		"/window - окно бронирования (пн-пт следующей недели)\n" +
		"/availability <candidate_id> <employee_ids> - общие свободные часы\n" +
		"  employee_ids через запятую, кандидата можно пропустить знаком -\n" +
		"  пример: /availability 1 2,3\n" +
		"/help - эта справка"

	unknownCommandText = "Не понимаю сообщение. Список команд: /help"
	usageText          = "Использование: /availability <candidate_id> <employee_ids>\nпример: /availability 1 2,3"
)

// Reply формирует ответ на текст команды. Не зависит от Telegram, поэтому проверяется напрямую.
func (c *BotController) Reply(ctx context.Context, text string) string {
	command, args := splitCommand(text)

	switch command {
	case "/start", "/help":
		return helpText
	case "/window":
		return formatWindow(c.slots.Now())
	case "/availability":
		candidateID, employeeIDs, err := parseAvailabilityArgs(args)
		if err != nil {
			return usageText
		}

		hours, err := c.slots.Availability(ctx, candidateID, employeeIDs)
		if err != nil {
			return c.describeError(err)
		}
		return formatHours(hours)
	default:
		return unknownCommandText
	}
}

// splitCommand отделяет команду от аргументов и убирает суффикс @BotName
func splitCommand(text string) (string, []string) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return "", nil
	}

	command := strings.ToLower(fields[0])
	if at := strings.IndexByte(command, '@'); at > 0 {
		command = command[:at]
	}
	return command, fields[1:]
}

// parseAvailabilityArgs: "<candidate|-> [employee_ids]"
func parseAvailabilityArgs(args []string) (candidateID, employeeIDs string, err error) {
	if len(args) == 0 || len(args) > 2 {
		return "", "", fmt.Errorf("expected 1 or 2 arguments, got %d", len(args))
	}

	candidateID = args[0]
	if candidateID == "-" {
		candidateID = ""
	}
	if len(args) == 2 {
		employeeIDs = args[1]
	}
	return candidateID, employeeIDs, nil
}

func formatWindow(now time.Time) string {
	monday, friday := service.BookingWindow(now)
	return fmt.Sprintf("Окно бронирования: %s ... %s", monday.Format("2006-01-02"), friday.Format("2006-01-02"))
}

func formatHours(hours []string) string {
	if len(hours) == 0 {
		return "Общих свободных часов нет"
	}
	return "Общие свободные часы:\n" + strings.Join(hours, "\n")
}

func (c *BotController) describeError(err error) string {
	switch {
	case errors.Is(err, service.ErrEmployeeNotFound):
		return "Один из сотрудников не найден"
	case errors.Is(err, service.ErrNoParticipant):
		return "Укажите кандидата или хотя бы одного сотрудника"
	case errors.Is(err, service.ErrValidation):
		return "Некорректный запрос: " + err.Error()
	default:
		c.logger.Error("Availability query failed", zap.Error(err))
		return "Произошла ошибка. Попробуйте позже."
	}
}
