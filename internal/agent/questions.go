package agent

// QuickQuestions are preset questions offered to the user.
var QuickQuestions = []string{
	"What happens at my next hearing?",
	"What are my parental rights?",
	"How do I complete my case plan?",
	"What if I can't attend court?",
}

// QuickQuestion returns the 1-based preset n.
func QuickQuestion(n int) (string, bool) {
	if n < 1 || n > len(QuickQuestions) {
		return "", false
	}
	return QuickQuestions[n-1], true
}
