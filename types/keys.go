package types

const (
	// ModuleName defines the simulator's error codespace and log scope.
	ModuleName = "simgate"
)
