package service

import (
	"fmt"
	"strings"
)

// Category selects grading criteria and the practice topic pool.
type Category string

const (
	CategoryEssay  Category = "essay"
	CategoryCoding Category = "coding"
	CategoryMaths  Category = "maths"
)

// DefaultCategory is used for any unrecognised category value.
const DefaultCategory = CategoryEssay

// ResolveCategory maps a raw type value to a Category. Unknown or empty
// values resolve to DefaultCategory; this is a default, not an error.
func ResolveCategory(raw string) Category {
	switch Category(raw) {
	case CategoryEssay, CategoryCoding, CategoryMaths:
		return Category(raw)
	default:
		return DefaultCategory
	}
}

var feedbackInstructions = map[Category]string{
	CategoryEssay: `You are an expert writing tutor and essay grader.
Evaluate the essay on thesis clarity, structure and organisation, quality of evidence and argument, grammar and mechanics, and style.
Be encouraging but honest. Quote the exact sentences you comment on in the annotations.
Use annotation categories grammar, logic, style, clarity or accuracy.
Score from 0 to 100 and give a letter grade from A+ to F.`,
	CategoryCoding: `You are an expert programming tutor and code reviewer.
Evaluate the code on correctness, efficiency and algorithmic complexity, readability and naming, edge-case handling, and best practices for the language.
Be encouraging but honest. Quote the exact lines you comment on in the annotations.
Use annotation categories syntax, logic, optimization, style or clarity.
Score from 0 to 100 and give a letter grade from A+ to F.`,
	CategoryMaths: `You are an expert math tutor and problem grader.
Evaluate the work on accuracy of the final answer, validity of each step, clarity of reasoning and notation, and choice of method.
Be encouraging but honest. Quote the exact steps you comment on in the annotations.
Use annotation categories accuracy, logic or clarity.
Score from 0 to 100 and give a letter grade from A+ to F.`,
}

var topicSuggestions = map[Category][]string{
	CategoryEssay: {
		"Persuasive Writing",
		"Thesis Statements",
		"Evidence Analysis",
		"Counter-Arguments",
		"Transitions & Flow",
		"Conclusion Writing",
	},
	CategoryCoding: {
		"Binary Search",
		"Recursion",
		"Dynamic Programming",
		"Graph Traversal",
		"Sorting Algorithms",
		"OOP Design",
	},
	CategoryMaths: {
		"Integration",
		"Derivatives",
		"Matrix Operations",
		"Probability",
		"Linear Algebra",
		"Trigonometry",
	},
}

// FeedbackInstruction returns the system instruction for category.
func FeedbackInstruction(category Category) string {
	if instruction, ok := feedbackInstructions[category]; ok {
		return instruction
	}
	return feedbackInstructions[DefaultCategory]
}

// FeedbackPrompt frames the submission for the model.
func FeedbackPrompt(category Category, content string) string {
	return fmt.Sprintf("Please evaluate the following %s submission and provide detailed feedback:\n\n%s", category, content)
}

// PracticeInstruction returns the system instruction for a practice problem.
func PracticeInstruction(category Category, difficulty, topic string) string {
	return fmt.Sprintf(`You are a creative and encouraging tutor who generates practice problems.
Your tone is friendly and Gen Z-accessible. Make problems interesting and relevant to real life when possible.
Generate a %s level %s practice problem about: %s.`, difficulty, category, topic)
}

// PracticePrompt is the user prompt for a practice problem.
func PracticePrompt(category Category, difficulty, topic string) string {
	return fmt.Sprintf(`Create a %s difficulty %s practice exercise about "%s".
Make it engaging and educational. Include progressive hints that guide without giving away the answer.`, difficulty, category, topic)
}

// TopicSuggestions returns a copy of the suggested practice topics.
func TopicSuggestions(category Category) []string {
	return append([]string(nil), topicSuggestions[ResolveCategory(string(category))]...)
}

func normaliseDifficulty(raw string) string {
	difficulty := strings.TrimSpace(raw)
	if difficulty == "" {
		return "intermediate"
	}
	return difficulty
}
