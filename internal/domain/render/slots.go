package render

// Slot ids shared by every surface
const (
	SlotInput            = "newsInput"
	SlotResults          = "results"
	SlotNaiveBayes       = "nb"
	SlotDecisionTree     = "dt"
	SlotRandomForest     = "rf"
	SlotGradientBoosting = "gb"
	SlotStacking         = "stack"
	SlotFinalVerdict     = "finalVerdict"
)
