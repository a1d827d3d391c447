package constant

const (
	RiskAnalysisPrompt = `Analyze the following clause change for risk.

Evaluate:
1. Does this increase legal/financial risk?
2. Are protective terms removed or weakened?
3. Is ambiguity introduced?

Answer with exactly one word: Low, Medium or High.
`

	ExplanationPrompt = `Generate a clear, professional summary of the contract change and its risk.
Use clear language. SIMPLE ENGLISH. Focus on facts and evidence.
`
)
