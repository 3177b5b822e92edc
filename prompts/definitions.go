/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package prompts

import "chainguard.dev/cefrassess/cefr"

const grammarTemplate = `Evaluate grammatical errors of the User using the following error categories and examples as reference.
Text to evaluate: {{text}}

Error Categories and Examples:
{{criteria}}

Please analyze the text and identify any grammatical errors, categorizing them according to the provided categories.
{{formatter}}`

const grammarCriteria = `1. Subject-Verb Agreement
   Incorrect: The team are playing well.
   Correct: The team is playing well.

2. Tense Usage
   Incorrect: I have been to Paris last year.
   Correct: I went to Paris last year.

3. Article Usage
   Incorrect: I saw elephant at zoo.
   Correct: I saw an elephant at the zoo.

4. Preposition Usage
   Incorrect: I'm looking forward meeting you.
   Correct: I'm looking forward to meeting you.

5. Pronoun Reference
   Incorrect: When John met Peter, he was happy.
   Correct: When John met Peter, John was happy.

6. Modifier Placement
   Incorrect: I only ate the sandwich.
   Correct: I ate only the sandwich.

7. Parallel Structure
   Incorrect: She likes reading, writing, and to dance.
   Correct: She likes reading, writing, and dancing.

8. Countable/Uncountable Nouns
   Incorrect: I have many informations.
   Correct: I have much information.

9. Conditional Sentences
   Incorrect: If I would have known, I would have told you.
   Correct: If I had known, I would have told you.

10. Passive Voice
    Incorrect: The book was being read by me.
    Correct: I was reading the book.

11. Gerund vs Infinitive
    Incorrect: I enjoy to swim.
    Correct: I enjoy swimming.

12. Word Order
    Incorrect: I yesterday went to the store.
    Correct: I went to the store yesterday.

13. Relative Clauses
    Incorrect: The man which I met was friendly.
    Correct: The man who I met was friendly.

14. Comparatives and Superlatives
    Incorrect: This is more better than that.
    Correct: This is better than that.

15. Modal Verbs
    Incorrect: I must to go now.
    Correct: I must go now.

16. Phrasal Verbs
    Incorrect: I look forward meeting you.
    Correct: I look forward to meeting you.

17. Reported Speech
    Incorrect: He said he will come tomorrow.
    Correct: He said he would come tomorrow.

18. Question Formation
    Incorrect: Where you are going?
    Correct: Where are you going?

19. Negation
    Incorrect: I don't have no money.
    Correct: I don't have any money.

20. Punctuation
    Incorrect: The cat sat on the mat it was warm.
    Correct: The cat sat on the mat. It was warm.`

const grammarFields = `- errors (array of objects, each containing):
  - category (string): The error category number and name
  - location (string): The specific text segment containing the error
  - correction (string): The corrected version
  - explanation (string): Brief explanation of the error
- cefr_level (string): The assessed CEFR level (C2, C1, B2, B1, A2, A1)
- reasoning (string): Detailed explanation of why this CEFR level was chosen`

var grammarExample = GrammarResponse{
	Errors: []GrammarError{{
		Category:    "1. Subject-Verb Agreement",
		Location:    "The team are playing",
		Correction:  "The team is playing",
		Explanation: "Collective noun requires singular verb",
	}},
	Level:     cefr.B2,
	Reasoning: "Shows a relatively high degree of grammatical control. Does not make errors which cause misunderstanding, and can correct most of his/her mistakes.",
}

const coherenceTemplate = `Evaluate the coherence of the User and determine its CEFR level based on the following criteria:
Text to evaluate: {{text}}

CEFR Coherence Criteria:
{{criteria}}

Please analyze the text and determine which CEFR level best describes the coherence demonstrated.
Also judge whether the text is complete, relevant and logically ordered.
{{formatter}}`

const coherenceCriteria = `C2 Level:
- Can create coherent and cohesive discourse making full and appropriate use of a variety of organisational patterns
- Can use a wide range of connectors and other cohesive devices effectively
- Demonstrates sophisticated control over discourse structure

C1 Level:
- Can produce clear, smoothly-flowing, well-structured speech
- Shows controlled use of organisational patterns
- Uses connectors and cohesive devices effectively

B2 Level:
- Can use a limited number of cohesive devices to link utterances into clear, coherent discourse
- May show some "jumpiness" in longer contributions
- Maintains basic coherence across the text

B1 Level:
- Can link a series of shorter, discrete simple elements into a connected sequence
- Uses basic connectors to create linear sequences of points
- Shows basic coherence in shorter texts

A2 Level:
- Can link groups of words with simple connectors like "and", "but" and "because"
- Shows limited coherence in very short texts
- Uses basic connectors appropriately

A1 Level:
- Can link words or groups of words with very basic linear connectors like "and" or "then"
- Shows minimal coherence
- Limited use of connectors`

const coherenceFields = `- cefr_level (string): The assessed CEFR level (A1, A2, B1, B2, C1, C2)
- reasoning (string): Detailed explanation of why this CEFR level was chosen, focusing on coherence features
- overall_score (float): A score between 0 and 1 representing overall coherence
- criterion_scores (object):
  - completeness (boolean): Whether the text addresses the whole task
  - relevance (boolean): Whether the text stays on topic
  - logical_flow (boolean): Whether ideas follow a logical order
- criterion_reasoning (object): One explanation per criterion, keyed completeness, relevance and logical_flow
- summary (string): Brief summary of the coherence assessment`

var coherenceExample = CoherenceResponse{
	Level:        cefr.B2,
	Reasoning:    "The text demonstrates B2-level coherence with appropriate use of cohesive devices, though there are some minor inconsistencies in longer sections. The overall structure is clear but could benefit from more sophisticated connectors.",
	OverallScore: 0.75,
	CriterionScores: CoherenceScores{
		Completeness: true,
		Relevance:    true,
		LogicalFlow:  false,
	},
	CriterionReasoning: CoherenceReasoning{
		Completeness: "Every question from the interviewer receives an answer.",
		Relevance:    "Answers stay on the topic of the conversation.",
		LogicalFlow:  "The longer answer jumps between points without linking them.",
	},
	Summary: "Clear B2-level coherence with occasional jumpiness in longer turns.",
}

const vocabularyTemplate = `Evaluate the vocabulary and language range of the User and determine its CEFR level based on the following criteria:
Text to evaluate: {{text}}

Evaluation Criteria:
{{criteria}}

Please analyze the text, provide scores and reasoning for each criterion, and determine which CEFR level best describes the language range demonstrated.
{{formatter}}`

const vocabularyCriteria = `1. Word Variety
   - Is there a good mix of different words?
   - Are words repeated unnecessarily?
   - Is the vocabulary appropriate for the context?

2. Word Level
   - Are advanced or sophisticated words used appropriately?
   - Is the vocabulary level consistent throughout?
   - Are words used in their correct context?

3. Word Choice
   - Are words chosen for precision and clarity?
   - Are there any inappropriate or awkward word choices?
   - Do the words effectively convey the intended meaning?

4. Collocations and Phrases
   - Are common word combinations used correctly?
   - Are idiomatic expressions used appropriately?
   - Are there any unnatural word combinations?

5. Academic/Technical Vocabulary
   - Is domain-specific vocabulary used correctly?
   - Are technical terms explained when needed?
   - Is the vocabulary level appropriate for the audience?

CEFR Range Levels:
C2: Good command of idiomatic expressions and colloquialisms, awareness of connotative levels of meaning, varies formulation to avoid repetition.
C1: Good range of vocabulary for matters relating to their field, varies formulation to avoid frequent repetition, broad vocabulary range.
B2: Sufficient vocabulary to express him/herself with some circumlocutions, some idiomatic expressions, adequate vocabulary range.
B1: Enough vocabulary to express him/herself with some circumlocutions on familiar topics, basic vocabulary range.
A2: Sufficient vocabulary for routine tasks, limited vocabulary range.
A1: A basic range of simple phrases and sentences, very limited vocabulary range.`

const vocabularyFields = `- cefr_level (string): The assessed CEFR level (A1, A2, B1, B2, C1, C2)
- reasoning (string): Detailed explanation of why this CEFR level was chosen
- overall_score (float): A score between 0 and 1 representing overall vocabulary quality
- criterion_scores (object): Scores for each criterion
  - word_variety (float): Score for word variety (0-1)
  - word_level (float): Score for word level (0-1)
  - word_choice (float): Score for word choice (0-1)
  - collocations (float): Score for collocations and phrases (0-1)
  - academic_vocab (float): Score for academic/technical vocabulary (0-1)
- criterion_reasoning (object): One explanation per criterion, using the same keys as criterion_scores
- vocabulary_features (object): Analysis of vocabulary characteristics
  - unique_words (int): Number of unique words
  - total_words (int): Total number of words
  - advanced_words (list): List of advanced/sophisticated words used
  - repeated_words (list): List of words that might be overused
- summary (string): Overall assessment of the text's vocabulary quality`

var vocabularyExample = VocabularyResponse{
	Level:        cefr.B2,
	Reasoning:    "The text demonstrates B2-level language range with sufficient vocabulary to express ideas with some circumlocutions. While there is good use of idiomatic expressions, the vocabulary lacks the sophistication and nuance typical of C1 level.",
	OverallScore: 0.85,
	CriterionScores: VocabularyScores{
		WordVariety:   0.9,
		WordLevel:     0.8,
		WordChoice:    0.85,
		Collocations:  0.8,
		AcademicVocab: 0.85,
	},
	CriterionReasoning: VocabularyReasoning{
		WordVariety:   "Good mix of vocabulary with minimal repetition",
		WordLevel:     "Appropriate use of advanced vocabulary",
		WordChoice:    "Words chosen with precision",
		Collocations:  "Natural word combinations",
		AcademicVocab: "Domain-specific terms used appropriately",
	},
	Features: VocabularyFeatures{
		UniqueWords:   150,
		TotalWords:    200,
		AdvancedWords: []string{"sophisticated", "comprehensive", "analytical"},
		RepeatedWords: []string{"important"},
	},
	Summary: "The text demonstrates strong vocabulary usage with good variety and appropriate word choices.",
}

const interactionTemplate = `Evaluate the interaction skills of the User and determine its CEFR level:
Conversation to evaluate: {{text}}

CEFR Interaction Criteria:
{{criteria}}

Please analyze the conversation and determine which CEFR level best describes the interaction skills demonstrated.
{{formatter}}`

const interactionCriteria = `C2 Level:
- Can interact with ease and skill
- Picks up and uses non-verbal and intonational cues effortlessly
- Interweaves contribution into joint discourse naturally
- Demonstrates fully natural turn-taking
- Shows skillful referencing and allusion making

C1 Level:
- Can select suitable phrases for discourse functions
- Prefaces remarks appropriately to get/keep the floor
- Relates contributions skillfully to other speakers
- Shows good awareness of conversation flow

B2 Level:
- Can initiate discourse and take turns appropriately
- Can end conversations when needed
- Helps discussion along on familiar topics
- Confirms comprehension and invites others in

B1 Level:
- Can initiate, maintain and close simple face-to-face conversations
- Handles familiar or personally interesting topics
- Can repeat back to confirm mutual understanding
- Shows basic conversation management skills

A2 Level:
- Can answer questions and respond to simple statements
- Can indicate when following the conversation
- Limited ability to keep conversation going independently
- Basic interaction skills

A1 Level:
- Can ask and answer questions about personal details
- Can interact in a simple way
- Communication dependent on repetition and rephrasing
- Basic question-answer interaction`

const interactionFields = `- cefr_level (string): The assessed CEFR level (A1, A2, B1, B2, C1, C2)
- confidence_score (float): Confidence in the assessment (0-1)
- reasoning (string): Detailed explanation of why this CEFR level was chosen
- key_features (array): List of key interaction features observed that support this level
- summary (string): Brief summary of the interaction assessment`

var interactionExample = InteractionResponse{
	Level:           cefr.B2,
	ConfidenceScore: 0.85,
	Reasoning:       "The conversation demonstrates strong B2-level interaction skills, particularly in initiating discourse and managing turn-taking. While there are some sophisticated elements, the interaction lacks the natural flow and nuanced referencing typical of C1 level.",
	KeyFeatures:     []string{"Appropriate turn-taking", "Good topic management", "Clear conversation structure", "Effective comprehension checks"},
	Summary:         "Strong B2-level interaction with clear structure and good turn management.",
}

const fluencyTemplate = `Evaluate the fluency of the User and determine its CEFR level:
Text to evaluate: {{text}}

Additional metrics:
- Pause frequency: {{pause_frequency}}
- Average pause duration: {{avg_pause_duration}}
- Speaking rate: {{speaking_rate}}

CEFR Fluency Criteria:
{{criteria}}

Please analyze the text and determine which CEFR level best describes the fluency demonstrated.
{{formatter}}`

const fluencyCriteria = `C2 Level:
- Can express him/herself spontaneously at length with a natural colloquial flow
- Avoids or backtracks around any difficulty so smoothly that the interlocutor is hardly aware of it
- Demonstrates effortless fluency with minimal pausing

C1 Level:
- Can express him/herself fluently and spontaneously, almost effortlessly
- Only a conceptually difficult subject can hinder a natural, smooth flow of language
- Shows high fluency with occasional strategic pausing

B2 Level:
- Can produce stretches of language with a fairly even tempo
- May be hesitant as he/she searches for patterns and expressions
- Shows few noticeably long pauses

B1 Level:
- Can keep going comprehensibly, even though pausing for grammatical and lexical planning and repair is very evident
- Especially noticeable in longer stretches of free production
- Shows moderate fluency with regular pausing

A2 Level:
- Can make him/herself understood in very short utterances
- Pauses, false starts and reformulation are very evident
- Shows limited fluency with frequent pausing

A1 Level:
- Can manage very short, isolated, mainly pre-packaged utterances
- Much pausing to search for expressions, to articulate less familiar words, and to repair communication
- Shows minimal fluency with extensive pausing`

const fluencyFields = `- cefr_level (string): The assessed CEFR level (A1, A2, B1, B2, C1, C2)
- reasoning (string): Detailed explanation of why this CEFR level was chosen
- fluency_features (array): List of fluency features observed that support this level
- summary (string): Brief summary of the fluency assessment`

var fluencyExample = FluencyResponse{
	Level:           cefr.B2,
	Reasoning:       "The text demonstrates B2-level fluency with a fairly even tempo and few noticeably long pauses. While there is some hesitation when searching for expressions, the overall flow is maintained.",
	FluencyFeatures: []string{"Even tempo", "Few long pauses", "Occasional hesitation", "Comprehensible flow"},
	Summary:         "Strong B2-level fluency with good flow and minimal disruption.",
}
