package services

import "fmt"

func explainPrompt(subject, topic, level string) string {
	return fmt.Sprintf(`You are an AI Study Assistant.
Input:
- Subject: %s
- Topic: %s
- Learning Level: %s

Task:
1. Explain the topic in a way suitable for the selected learning level.
2. Include examples appropriate for the subject.
3. Summarize key points in bullet format.
4. Output should be clear, readable, and structured with markdown headings and bullet points.
`, subject, topic, level)
}

func summarizePrompt(notes string) string {
	return "Summarize the following study notes into short, easy-to-understand bullet points:\n\n" + notes
}

func quizPrompt(topic string, count int) string {
	return fmt.Sprintf(`Generate a multiple-choice quiz with %d questions on the topic '%s'. `+
		`Provide the output in valid JSON format only, following this structure: `+
		`{"quiz": [{"question": "...", "options": ["A", "B", "C", "D"], "answer": "..."}]}. `+
		`Do not include any markdown formatting or extra text outside the JSON.`, count, topic)
}

func flashcardsPrompt(topic string) string {
	return fmt.Sprintf(`Generate %d question-answer flashcards for the topic '%s'. `+
		`Provide the output in valid JSON format only, following this structure: `+
		`{"flashcards": [{"question": "...", "answer": "..."}]}. `+
		`Do not include any markdown formatting or extra text outside the JSON.`, FlashcardCount, topic)
}
