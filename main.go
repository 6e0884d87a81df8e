// SPDX-License-Identifier: MPL-2.0

package main

import cmd "venvctl/cmd/venvctl"

func main() {
	cmd.Execute()
}
