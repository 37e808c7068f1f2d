package config

import (
	"os"
	"os/user"
)

// OperatorEnv overrides the detected operator name.
const OperatorEnv = "MERCEARIA_OPERATOR"

// DetectOperator infers the operator name when mercearia.toml leaves it
// empty. It checks $MERCEARIA_OPERATOR, then the login user, then $USER,
// returning "operador" if none provides a name.
func DetectOperator() string {
	if name := os.Getenv(OperatorEnv); name != "" {
		return name
	}
	if name := detectFromUser(); name != "" {
		return name
	}
	if name := os.Getenv("USER"); name != "" {
		return name
	}
	return "operador"
}

func detectFromUser() string {
	u, err := user.Current()
	if err != nil {
		return ""
	}
	return u.Username
}
