// Package prompts builds the natural-language prompts for the three
// generation tasks. Builders are pure functions of their inputs: no I/O,
// no shared state.
package prompts

import (
	"fmt"
	"strings"
)

// DifficultyLevels is the number of rows in the fixed difficulty table.
const DifficultyLevels = 7

// Difficulty is one row of the fixed difficulty configuration table. The
// escalating Complexity and Cognitive texts are the only mechanism that
// makes successive exams harder: the model never sees earlier exams.
type Difficulty struct {
	Level      int
	Label      string
	Complexity string
	Cognitive  string
}

var difficultyTable = [DifficultyLevels]Difficulty{
	{1, "Foundation", "basic recall and recognition of fundamental facts, terms and definitions", "remembering"},
	{2, "Beginner", "straightforward application of single concepts in familiar contexts", "understanding"},
	{3, "Intermediate", "multi-step problems that combine two or three concepts", "applying"},
	{4, "Advanced", "analysis of unfamiliar scenarios where the solver must choose which concepts apply", "analyzing"},
	{5, "Expert", "complex synthesis across the whole topic, with subtle distinctions between close alternatives", "evaluating"},
	{6, "Master", "open-ended problems that demand original lines of reasoning and defense of the chosen approach", "creating"},
	{7, "Genius", "the hardest questions a leading specialist in the field could reasonably be expected to answer", "creating"},
}

// DifficultyConfig returns the table row for a level. Levels outside 1..7
// clamp to the nearest defined row, so every exam gets a label from the
// fixed vocabulary.
func DifficultyConfig(level int) Difficulty {
	if level < 1 {
		level = 1
	}
	if level > DifficultyLevels {
		level = DifficultyLevels
	}
	return difficultyTable[level-1]
}

func writeLanguageRequirement(sb *strings.Builder, languageName string) {
	fmt.Fprintf(sb, "HARD REQUIREMENT: every piece of text in your response MUST be written in %s.\n\n", languageName)
}

func writeJSONOnly(sb *strings.Builder) {
	sb.WriteString("\nRespond with ONLY the JSON. No commentary, no markdown fences, nothing before or after it.\n")
}

// BuildSolverPrompt asks the model to find and solve every problem in the
// given content. Zero problems is a valid answer (an empty array).
func BuildSolverPrompt(content, languageName string) string {
	var sb strings.Builder
	writeLanguageRequirement(&sb, languageName)

	sb.WriteString("You are an expert tutor. Find every solvable problem in the content below and solve each one step by step.\n\n")
	sb.WriteString("CONTENT:\n" + content + "\n\n")
	sb.WriteString("Respond with a JSON array, one object per problem found. If the content contains no solvable problems, respond with an empty array [].\n")
	sb.WriteString("Each object has these fields:\n")
	sb.WriteString(`- "statement": string, the problem restated` + "\n")
	sb.WriteString(`- "subject": string, the subject area (e.g. algebra, physics)` + "\n")
	sb.WriteString(`- "steps": array of {"step": integer starting at 1, "explanation": string, "work": string with the calculation or derivation for this step}` + "\n")
	sb.WriteString(`- "finalAnswer": string, the final answer stated plainly` + "\n")
	writeJSONOnly(&sb)
	return sb.String()
}

// BuildLearningPathPrompt asks for an ordered study plan for a topic.
func BuildLearningPathPrompt(topic, languageName string) string {
	var sb strings.Builder
	writeLanguageRequirement(&sb, languageName)

	sb.WriteString("Create a complete, ordered learning path for the topic below, from first principles to proficiency.\n\n")
	sb.WriteString("TOPIC: " + topic + "\n\n")
	sb.WriteString("Respond with a JSON object with these fields:\n")
	sb.WriteString(`- "topic": string` + "\n")
	sb.WriteString(`- "totalEstimatedTime": string, a human-readable total (e.g. "6 weeks")` + "\n")
	sb.WriteString(`- "difficulty": string, exactly one of "Beginner", "Intermediate", "Advanced", "Mixed"` + "\n")
	sb.WriteString(`- "description": string, one paragraph describing the path` + "\n")
	sb.WriteString(`- "steps": array of 5 to 10 objects, in learning order, each with:` + "\n")
	sb.WriteString(`    "step": integer, 1-based position` + "\n")
	sb.WriteString(`    "title": string` + "\n")
	sb.WriteString(`    "description": string` + "\n")
	sb.WriteString(`    "estimatedTime": string (e.g. "3 days")` + "\n")
	sb.WriteString(`    "difficulty": string, one of "Beginner", "Intermediate", "Advanced"` + "\n")
	sb.WriteString(`    "prerequisites": array of titles of earlier steps (empty for the first step)` + "\n")
	sb.WriteString(`    "keyTopics": array of strings` + "\n")
	sb.WriteString(`    "practiceExercises": array of strings` + "\n")
	writeJSONOnly(&sb)
	return sb.String()
}

// BuildStepMaterialPrompt asks for study material for one step of a path.
func BuildStepMaterialPrompt(topic, stepTitle, stepDescription, languageName string) string {
	var sb strings.Builder
	writeLanguageRequirement(&sb, languageName)

	sb.WriteString("Write study material for one step of a learning path.\n\n")
	sb.WriteString("OVERALL TOPIC: " + topic + "\n")
	sb.WriteString("STEP: " + stepTitle + "\n")
	if stepDescription != "" {
		sb.WriteString("STEP DESCRIPTION: " + stepDescription + "\n")
	}
	sb.WriteString("\nRespond with a JSON object with these fields:\n")
	sb.WriteString(`- "stepTitle": string` + "\n")
	sb.WriteString(`- "content": string, thorough explanatory prose for this step` + "\n")
	sb.WriteString(`- "examples": array of {"label": string naming the example, "detail": string working it through}` + "\n")
	sb.WriteString(`- "keyPoints": array of strings, the takeaways` + "\n")
	writeJSONOnly(&sb)
	return sb.String()
}

// BuildStepQuizPrompt asks for a short multiple-choice quiz for one step.
func BuildStepQuizPrompt(topic, stepTitle, languageName string, numQuestions int) string {
	var sb strings.Builder
	writeLanguageRequirement(&sb, languageName)

	fmt.Fprintf(&sb, "Write a quiz of exactly %d multiple-choice questions checking understanding of one learning step.\n\n", numQuestions)
	sb.WriteString("OVERALL TOPIC: " + topic + "\n")
	sb.WriteString("STEP: " + stepTitle + "\n\n")
	sb.WriteString("Respond with a JSON array, one object per question, each with:\n")
	sb.WriteString(`- "question": string` + "\n")
	sb.WriteString(`- "options": array of exactly 4 strings` + "\n")
	sb.WriteString(`- "correctAnswer": integer, 0-based index into options` + "\n")
	sb.WriteString(`- "explanation": string, why the correct option is correct` + "\n")
	writeJSONOnly(&sb)
	return sb.String()
}

// BuildExamPrompt asks for one exam of a progressive series at the given
// difficulty level. Consistency across levels comes entirely from the
// shared topic and description plus this escalating instruction text.
func BuildExamPrompt(topic, description string, level, totalLevels, questionsPerExam, examTimeMinutes int, languageName string) string {
	cfg := DifficultyConfig(level)

	var sb strings.Builder
	writeLanguageRequirement(&sb, languageName)

	fmt.Fprintf(&sb, "Create exam %d of %d in a progressive series on the topic below. This exam is at the %q difficulty level.\n\n", level, totalLevels, cfg.Label)
	sb.WriteString("TOPIC: " + topic + "\n")
	if description != "" {
		sb.WriteString("COVERAGE: " + description + "\n")
	}
	sb.WriteString("\nDIFFICULTY REQUIREMENTS:\n")
	fmt.Fprintf(&sb, "- Questions must demand %s.\n", cfg.Complexity)
	fmt.Fprintf(&sb, "- Target the %s cognitive level.\n", cfg.Cognitive)
	fmt.Fprintf(&sb, "- This exam must be distinctly harder than level %d would be and easier than level %d would be.\n\n", level-1, level+1)

	fmt.Fprintf(&sb, "The exam has exactly %d questions, takes about %d minutes, and its question points sum to 100.\n\n", questionsPerExam, examTimeMinutes)

	sb.WriteString("Respond with a JSON object with these fields:\n")
	sb.WriteString(`- "title": string` + "\n")
	sb.WriteString(`- "description": string` + "\n")
	sb.WriteString(`- "instructions": string, shown to the student before starting` + "\n")
	sb.WriteString(`- "totalPoints": integer, the sum of question points (100)` + "\n")
	sb.WriteString(`- "estimatedTime": integer, minutes` + "\n")
	sb.WriteString(`- "questions": array, each with:` + "\n")
	sb.WriteString(`    "id": string` + "\n")
	sb.WriteString(`    "question": string` + "\n")
	sb.WriteString(`    "type": string, exactly one of "multiple-choice", "true-false", "short-answer", "essay", "fill-blank", "matching"` + "\n")
	sb.WriteString(`    "options": array of 4 strings, present only when type is "multiple-choice"` + "\n")
	sb.WriteString(`    "correctAnswer": for "multiple-choice" the 0-based option index; for every other type the literal expected answer` + "\n")
	sb.WriteString(`    "points": integer` + "\n")
	sb.WriteString(`    "explanation": string` + "\n")
	sb.WriteString(`    "difficulty": string, one of "Easy", "Medium", "Hard", "Very Hard", "Expert"` + "\n")
	writeJSONOnly(&sb)
	return sb.String()
}
