// Command diveplan is the zhl16deco CLI entrypoint.
package main

import "github.com/m5lapp/zhl16deco/cmd"

func main() {
	cmd.Execute()
}
