package main

import "github.com/jagan25-mj/startup-connect-hub/cmd/connecthub/cmd"

func main() {
	cmd.Execute()
}
