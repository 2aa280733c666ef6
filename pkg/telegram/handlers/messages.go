package handlers

const (
	welcomeText = `Приветствую! Я бот для обработки старорусских текстов.
Я могу:
- Переводить тексты на современный русский язык
- Создавать краткое содержание
- Сохранять обработанные тексты в базу данных

Просто отправьте мне текст на старорусском языке.
Используйте /help для получения списка команд.`

	helpText = `Доступные команды:
/start - Начать работу с ботом
/help - Показать это сообщение
/history - Показать историю обработанных текстов`

	ackText            = "Обрабатываю ваш текст..."
	translationHeader  = "Современный перевод:\n\n"
	summaryHeader      = "Краткое содержание:\n\n"
	keywordsHeader     = "Ключевые слова:\n\n"
	savedText          = "✅ Текст успешно обработан и сохранен в базу данных"
	failureText        = "Произошла ошибка при обработке текста. Попробуйте позже."
	noHistoryText      = "У вас пока нет обработанных текстов."
	historyFailureText = "Не удалось получить историю. Попробуйте позже."

	historyPreviewLength = 100
	historyDateFormat    = "2006-01-02 15:04:05"
)
