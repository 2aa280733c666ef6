package processor

import "fmt"

const (
	translatePersona = "Ты - русскоязычный эксперт по старорусским текстам. Отвечай только на русском языке."
	summarizePersona = "Ты - русскоязычный эксперт по анализу текстов. Отвечай ТОЛЬКО на русском языке. Никакого английского в ответах."
	keywordsPersona  = "Ты - русскоязычный эксперт по анализу текстов. Отвечай только на русском языке."
)

const translateTask = `Задача: переведи старорусский текст на современный русский язык.
Важно:
1. Сохрани смысл и стиль оригинала
2. Используй современные слова и обороты речи
3. Ответ должен быть только на русском языке

Текст для перевода: %s`

const summarizeTask = `Задача: создай краткое содержание текста на русском языке.
Требования:
1. Напиши 3-4 содержательных предложения
2. Выдели главные мысли и ключевые события
3. Используй только русский язык
4. Сохрани главный смысл текста

Текст для анализа: %s`

const keywordsTask = `Задача: выдели ключевые слова из текста.
Требования:
1. Выдели 5-7 важных слов или словосочетаний
2. Используй только русские слова
3. Перечисли слова через запятую
4. Обрати особое внимание на исторические термины

Текст для анализа: %s`

func taskPrompt(template, text string) string {
	return fmt.Sprintf(template, text)
}
