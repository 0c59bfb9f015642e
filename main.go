/*
Copyright © 2025 iamcdkapp Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package main

import "github.com/acoder2b/iamcdkapp/cmd"

func main() {
	cmd.Execute()
}
