// crmctl es la herramienta de línea de comandos del CRM: migración de datos
// entre backends, siembra inicial y utilidades de operación.
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
