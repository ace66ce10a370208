package services

// QuestionCount is the number of questions in one pairing round. Every
// completion check and every result computation runs over exactly this set.
const QuestionCount = 10

var questions = [QuestionCount]string{
	"What is your partner's favorite food?",
	"What would your partner do on a free Sunday?",
	"Which season does your partner like best?",
	"What is your partner's go-to karaoke song?",
	"Is your partner a morning person or a night owl?",
	"What drink does your partner order first?",
	"Where would your partner travel if money were no object?",
	"What is your partner's hidden talent?",
	"Which movie could your partner rewatch forever?",
	"What small thing instantly lifts your partner's mood?",
}

// Questions returns the fixed question prompts in play order.
func Questions() []string {
	out := make([]string, QuestionCount)
	copy(out, questions[:])
	return out
}
