package kronos

// Version is the interpreter release string reported by the CLI.
const Version = "0.3.0"
