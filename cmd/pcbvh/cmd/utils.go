package cmd

import (
	"bufio"
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v2"
)

// confirmIfExists reports whether it's fine to proceed writing path: true
// immediately if path doesn't exist yet, otherwise whatever the user
// answers to msg.
func confirmIfExists(path, msg string) (ok bool, err error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return true, nil
		}
		return false, err
	}
	return askForConfirmation(msg), nil
}

// askForConfirmation prints msg and reads a y/n answer from stdin,
// defaulting to no on a bare ENTER.
func askForConfirmation(msg string) bool {
	fmt.Println(msg)
	reader := bufio.NewReader(os.Stdin)
	defaultInput := byte('N')

	for {
		input, _ := reader.ReadString('\n')
		if len(input) == 0 {
			return defaultInput == 'Y'
		}
		c := input[0]
		if c == '\n' {
			c = defaultInput
		}
		switch c {
		case 'Y', 'y':
			return true
		case 'N', 'n':
			return false
		}
	}
}

func check(err error) {
	if err != nil {
		fmt.Printf("error, %v\n", err)
		os.Exit(-1)
	}
}

func unmarshalYAMLFile(path string, out interface{}) error {
	buf, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(buf, out)
}

func marshalYAMLFile(path string, in interface{}) error {
	buf, err := yaml.Marshal(in)
	if err != nil {
		return err
	}
	return os.WriteFile(path, buf, 0o644)
}
