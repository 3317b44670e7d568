package memory

import "duk-quiz-service/internal/domain"

// DefaultSetID names the built-in question set.
const DefaultSetID = "default"

// DefaultQuestionSets returns the built-in AI trivia bank keyed by set id.
func DefaultQuestionSets() map[string]domain.QuestionSet {
	return map[string]domain.QuestionSet{DefaultSetID: DefaultQuestionSet()}
}

func DefaultQuestionSet() domain.QuestionSet {
	return domain.QuestionSet{
		ID: DefaultSetID,
		Questions: []domain.Question{
			{
				ID:            "ai_1",
				Text:          `What does the "A" in AI stand for when discussing computer intelligence?`,
				Options:       []string{"Artificial", "Automated", "Advanced", "Analytical"},
				CorrectAnswer: 0,
				Explanation:   "AI stands for Artificial Intelligence: machines that mimic human intelligence to perform tasks.",
				Points:        50,
				TimeLimit:     30,
				RoundType:     domain.RoundStandard,
				Difficulty:    domain.DifficultyEasy,
				Hint:          "It is the opposite of natural or biological.",
			},
			{
				ID:            "ai_2",
				Text:          `Which mathematician developed a "Test" to see if a machine could mimic human conversation?`,
				Options:       []string{"Isaac Newton", "Alan Turing", "Ada Lovelace", "Charles Babbage"},
				CorrectAnswer: 1,
				Explanation:   "Alan Turing proposed the Turing Test in 1950 to judge whether a machine could behave like a human.",
				Points:        100,
				TimeLimit:     30,
				RoundType:     domain.RoundStandard,
				Difficulty:    domain.DifficultyEasy,
				Hint:          "He is famously known for breaking the Enigma code.",
			},
			{
				ID:            "ai_3",
				Text:          `What is the primary goal of a "Neural Network" in modern AI?`,
				Options:       []string{"To store large files", "To mimic the human brain to find patterns", "To speed up internet hardware", "To encrypt blockchain data"},
				CorrectAnswer: 1,
				Explanation:   "Neural networks mimic the brain's architecture to identify patterns and solve complex problems.",
				Points:        150,
				TimeLimit:     30,
				RoundType:     domain.RoundBuzzer,
				Difficulty:    domain.DifficultyMedium,
				Hint:          "Think about how biological neurons connect and learn.",
			},
			{
				ID:            "ai_4",
				Text:          `In the context of ChatGPT, what does the "P" in GPT stand for?`,
				Options:       []string{"Programmed", "Prototyped", "Pre-trained", "Processed"},
				CorrectAnswer: 2,
				Explanation:   "Pre-trained: the model learned from a large corpus before being fine-tuned.",
				Points:        150,
				TimeLimit:     30,
				RoundType:     domain.RoundStandard,
				Difficulty:    domain.DifficultyMedium,
				Hint:          "It describes how the model was taught before you interacted with it.",
			},
			{
				ID:            "ai_5",
				Text:          "Which IBM computer famously defeated world chess champion Garry Kasparov in 1997?",
				Options:       []string{"Watson", "Deep Blue", "AlphaGo", "Siri"},
				CorrectAnswer: 1,
				Explanation:   "Deep Blue was the first machine to defeat a reigning world chess champion in a match.",
				Points:        200,
				TimeLimit:     30,
				RoundType:     domain.RoundBuzzer,
				Difficulty:    domain.DifficultyMedium,
				Hint:          "It shares its name with a deep shade of a primary color.",
			},
			{
				ID:            "ai_6",
				Text:          "What term describes an AI model confidently presenting false information as fact?",
				Options:       []string{"Debugging", "Glitching", "Hallucination", "Phantom Data"},
				CorrectAnswer: 2,
				Explanation:   "A hallucination is factually wrong output delivered with apparent confidence.",
				Points:        200,
				TimeLimit:     30,
				RoundType:     domain.RoundStandard,
				Difficulty:    domain.DifficultyMedium,
				Hint:          "It is the same word used in psychology for seeing things that aren't there.",
			},
			{
				ID:            "ai_7",
				Text:          `Who coined the "Three Laws of Robotics" in his influential science fiction stories?`,
				Options:       []string{"Isaac Asimov", "Arthur C. Clarke", "Philip K. Dick", "Elon Musk"},
				CorrectAnswer: 0,
				Explanation:   "Isaac Asimov introduced the Three Laws of Robotics in his science fiction.",
				Points:        150,
				TimeLimit:     30,
				RoundType:     domain.RoundStandard,
				Difficulty:    domain.DifficultyMedium,
				Hint:          `He wrote "I, Robot".`,
			},
			{
				ID:            "ai_8",
				Text:          `In Machine Learning, what is "Overfitting"?`,
				Options:       []string{"Data is too large for storage", "A model memorizes noise rather than learning patterns", "Hardware overheating", "Too many layers in a network"},
				CorrectAnswer: 1,
				Explanation:   "An overfit model learns its training data, noise included, and generalizes poorly.",
				Points:        300,
				TimeLimit:     30,
				RoundType:     domain.RoundBuzzer,
				Difficulty:    domain.DifficultyHard,
				Hint:          "The model performs perfectly on training data but fails on new data.",
			},
			{
				ID:            "ai_9",
				Text:          "Which 2017 research paper introduced the Transformer architecture used by most modern LLMs?",
				Options:       []string{"Attention Is All You Need", "Computing Machinery and Intelligence", "The Deep Learning Revolution", "Neural Turing Machines"},
				CorrectAnswer: 0,
				Explanation:   `"Attention Is All You Need" introduced the Transformer architecture.`,
				Points:        400,
				TimeLimit:     30,
				RoundType:     domain.RoundStandard,
				Difficulty:    domain.DifficultyHard,
				Hint:          "The title suggests that a specific mechanism is the only requirement.",
			},
			{
				ID:            "ai_10",
				Text:          "What is the theoretical stage of AI where a machine can perform any intellectual task a human can?",
				Options:       []string{"ANI", "ASI", "AGI", "ALI"},
				CorrectAnswer: 2,
				Explanation:   "Artificial General Intelligence is a hypothetical AI matching humans at any intellectual task.",
				Points:        500,
				TimeLimit:     30,
				RoundType:     domain.RoundBuzzer,
				Difficulty:    domain.DifficultyHard,
				Hint:          `The "G" stands for General.`,
			},
		},
	}
}
