package main

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	flag "github.com/spf13/pflag"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash       Shell = "bash"
	ShellZsh        Shell = "zsh"
	ShellFish       Shell = "fish"
	ShellPowerShell Shell = "powershell"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = errors.New("unsupported shell")

// progName is the binary name completion scripts register for.
const progName = "md2slides"

// flagType represents the completion type for a flag.
type flagType int

const (
	flagString flagType = iota // default
	flagBool
	flagEnum // has predefined values
	flagFile // file with glob pattern
	flagDir  // directory
)

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long     string   // --output
	Short    string   // -o (empty if none)
	Type     flagType // completion type
	Desc     string   // help text
	Values   []string // for enum flags
	FileExts []string // for file flags, without dots
}

// commandDef describes a command for completion.
type commandDef struct {
	Name       string
	Desc       string
	Flags      []flagDef
	Args       []string // fixed positional values
	TakesFiles bool     // accepts markdown file arguments
}

// completionMeta holds completion-specific metadata for flags.
// Flag names, types, and descriptions come from the FlagSet.
type completionMeta struct {
	Values   []string
	FileExts []string
	IsDir    bool
}

// flagCompletionMeta maps flag names to their completion metadata.
var flagCompletionMeta = map[string]completionMeta{
	"log-level":  {Values: []string{"debug", "info", "warn", "error"}},
	"config":     {FileExts: []string{"yaml", "yml"}},
	"log-file":   {FileExts: []string{"log", "jsonl"}},
	"output":     {IsDir: true},
	"asset-path": {IsDir: true},
}

// markdownExts are the extensions offered for input files.
var markdownExts = []string{"md", "markdown"}

// shells lists the values accepted by the completion command.
var shells = []string{string(ShellBash), string(ShellZsh), string(ShellFish), string(ShellPowerShell)}

// extractFlagsFromFlagSet extracts flag definitions from a pflag.FlagSet,
// sorted by long name, enriched with flagCompletionMeta.
func extractFlagsFromFlagSet(fs *flag.FlagSet) []flagDef {
	var flags []flagDef

	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{
			Long:  f.Name,
			Short: f.Shorthand,
			Desc:  f.Usage,
			Type:  flagString,
		}
		if f.Value.Type() == "bool" {
			fd.Type = flagBool
		}

		if meta, ok := flagCompletionMeta[f.Name]; ok {
			switch {
			case len(meta.Values) > 0:
				fd.Type = flagEnum
				fd.Values = meta.Values
			case len(meta.FileExts) > 0:
				fd.Type = flagFile
				fd.FileExts = meta.FileExts
			case meta.IsDir:
				fd.Type = flagDir
			}
		}

		flags = append(flags, fd)
	})

	sort.Slice(flags, func(i, j int) bool { return flags[i].Long < flags[j].Long })
	return flags
}

// getCommands returns the command registry for completion.
// Build flags come from the real FlagSet.
func getCommands() []commandDef {
	return []commandDef{
		{
			Name:       "build",
			Desc:       "Build a markdown document into a slide deck",
			Flags:      extractFlagsFromFlagSet(newBuildFlagSet(&buildFlags{})),
			TakesFiles: true,
		},
		{
			Name:  "doctor",
			Desc:  "Check the Rust toolchain and Chrome setup",
			Flags: []flagDef{{Long: "json", Type: flagBool, Desc: "print results as JSON"}},
		},
		{
			Name: "completion",
			Desc: "Generate shell completion script",
			Args: shells,
		},
		{
			Name: "version",
			Desc: "Show version information",
		},
		{
			Name: "help",
			Desc: "Show help for a command",
			Args: []string{"build", "doctor", "completion", "version", "help"},
		},
	}
}

// GenerateCompletion writes shell completion script to w.
// Returns error if shell is unsupported or write fails.
func GenerateCompletion(w io.Writer, shell Shell) error {
	var b strings.Builder
	cmds := getCommands()

	switch shell {
	case ShellBash:
		writeBash(&b, cmds)
	case ShellZsh:
		writeZsh(&b, cmds)
	case ShellFish:
		writeFish(&b, cmds)
	case ShellPowerShell:
		writePowerShell(&b, cmds)
	default:
		return fmt.Errorf("%w: %q (supported: %s)", ErrUnsupportedShell, shell, strings.Join(shells, ", "))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// ---------------------------------------------------------------------------
// Bash
// ---------------------------------------------------------------------------

func writeBash(b *strings.Builder, cmds []commandDef) {
	fmt.Fprintf(b, "# bash completion for %s\n", progName)
	fmt.Fprintf(b, "_%s() {\n", progName)
	b.WriteString("    local cur prev\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	fmt.Fprintf(b, "    local commands=%q\n", strings.Join(commandNames(cmds), " "))
	b.WriteString("    if [[ ${COMP_CWORD} -eq 1 ]]; then\n")
	fmt.Fprintf(b, "        COMPREPLY=($(compgen -W \"${commands}\" -- \"${cur}\") $(compgen -f -X %s -- \"${cur}\"))\n", bashExtFilter(markdownExts))
	b.WriteString("        return\n")
	b.WriteString("    fi\n")
	b.WriteString("    case \"${COMP_WORDS[1]}\" in\n")

	for _, c := range cmds {
		pattern := c.Name
		if c.TakesFiles {
			for _, ext := range markdownExts {
				pattern += "|*." + ext
			}
		}
		fmt.Fprintf(b, "    %s)\n", pattern)

		if valued := flagsTakingValues(c.Flags); len(valued) > 0 {
			b.WriteString("        case \"${prev}\" in\n")
			for _, f := range valued {
				fmt.Fprintf(b, "        %s)\n", strings.Join(flagSpellings(f), "|"))
				switch f.Type {
				case flagEnum:
					fmt.Fprintf(b, "            COMPREPLY=($(compgen -W %q -- \"${cur}\")); return ;;\n", strings.Join(f.Values, " "))
				case flagFile:
					fmt.Fprintf(b, "            COMPREPLY=($(compgen -f -X %s -- \"${cur}\")); return ;;\n", bashExtFilter(f.FileExts))
				case flagDir:
					b.WriteString("            COMPREPLY=($(compgen -d -- \"${cur}\")); return ;;\n")
				default:
					b.WriteString("            return ;;\n")
				}
			}
			b.WriteString("        esac\n")
		}

		var words []string
		for _, f := range c.Flags {
			words = append(words, flagSpellings(f)...)
		}
		words = append(words, c.Args...)
		if c.TakesFiles {
			b.WriteString("        if [[ ${cur} == -* ]]; then\n")
			fmt.Fprintf(b, "            COMPREPLY=($(compgen -W %q -- \"${cur}\"))\n", strings.Join(words, " "))
			b.WriteString("        else\n")
			fmt.Fprintf(b, "            COMPREPLY=($(compgen -f -X %s -- \"${cur}\"))\n", bashExtFilter(markdownExts))
			b.WriteString("        fi\n")
		} else if len(words) > 0 {
			fmt.Fprintf(b, "        COMPREPLY=($(compgen -W %q -- \"${cur}\"))\n", strings.Join(words, " "))
		}
		b.WriteString("        ;;\n")
	}

	b.WriteString("    esac\n")
	b.WriteString("}\n")
	fmt.Fprintf(b, "complete -o filenames -F _%s %s\n", progName, progName)
}

// bashExtFilter builds a compgen -X pattern keeping only the given extensions.
func bashExtFilter(exts []string) string {
	return "'!*.@(" + strings.Join(exts, "|") + ")'"
}

// ---------------------------------------------------------------------------
// Zsh
// ---------------------------------------------------------------------------

func writeZsh(b *strings.Builder, cmds []commandDef) {
	fmt.Fprintf(b, "#compdef %s\n\n", progName)
	fmt.Fprintf(b, "_%s() {\n", progName)
	b.WriteString("    local -a commands\n")
	b.WriteString("    commands=(\n")
	for _, c := range cmds {
		fmt.Fprintf(b, "        '%s:%s'\n", c.Name, zshQuote(c.Desc))
	}
	b.WriteString("    )\n")
	b.WriteString("    local state\n")
	b.WriteString("    _arguments -C '1: :->cmd' '*:: :->args'\n")
	b.WriteString("    case $state in\n")
	b.WriteString("    cmd)\n")
	b.WriteString("        _describe 'command' commands\n")
	fmt.Fprintf(b, "        _files -g %s\n", zshGlob(markdownExts))
	b.WriteString("        ;;\n")
	b.WriteString("    args)\n")
	b.WriteString("        case $words[1] in\n")

	for _, c := range cmds {
		pattern := c.Name
		if c.TakesFiles {
			for _, ext := range markdownExts {
				pattern += "|*." + ext
			}
		}
		fmt.Fprintf(b, "        %s)\n", pattern)
		switch {
		case len(c.Flags) > 0:
			b.WriteString("            _arguments")
			for _, f := range c.Flags {
				fmt.Fprintf(b, " \\\n                %s", zshFlagSpec(f))
			}
			if c.TakesFiles {
				fmt.Fprintf(b, " \\\n                '*:markdown file:_files -g %s'", zshGlob(markdownExts))
			}
			b.WriteString("\n")
		case len(c.Args) > 0:
			fmt.Fprintf(b, "            _values '%s' %s\n", c.Name, strings.Join(c.Args, " "))
		}
		b.WriteString("            ;;\n")
	}

	b.WriteString("        esac\n")
	b.WriteString("        ;;\n")
	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	fmt.Fprintf(b, "compdef _%s %s\n", progName, progName)
}

// zshFlagSpec renders one _arguments spec.
func zshFlagSpec(f flagDef) string {
	desc := zshQuote(strings.NewReplacer("[", "(", "]", ")").Replace(f.Desc))

	var action string
	switch f.Type {
	case flagBool:
	case flagEnum:
		action = ":" + f.Long + ":(" + strings.Join(f.Values, " ") + ")"
	case flagFile:
		action = ":" + f.Long + ":_files -g " + zshGlob(f.FileExts)
	case flagDir:
		action = ":" + f.Long + ":_files -/"
	default:
		action = ":" + f.Long + ": "
	}

	if f.Short == "" {
		return fmt.Sprintf("'--%s[%s]%s'", f.Long, desc, action)
	}
	return fmt.Sprintf("'(-%s --%s)'{-%s,--%s}'[%s]%s'", f.Short, f.Long, f.Short, f.Long, desc, action)
}

// zshGlob builds a double-quoted extension glob, safe inside single quotes.
func zshGlob(exts []string) string {
	return "\"*.(" + strings.Join(exts, "|") + ")\""
}

// zshQuote escapes text for a single-quoted zsh string.
func zshQuote(s string) string {
	return strings.ReplaceAll(s, "'", `'\''`)
}

// ---------------------------------------------------------------------------
// Fish
// ---------------------------------------------------------------------------

func writeFish(b *strings.Builder, cmds []commandDef) {
	fmt.Fprintf(b, "# fish completion for %s\n", progName)
	fmt.Fprintf(b, "complete -c %s -f\n", progName)

	for _, c := range cmds {
		fmt.Fprintf(b, "complete -c %s -n __fish_use_subcommand -a %s -d '%s'\n", progName, c.Name, fishQuote(c.Desc))
	}
	fmt.Fprintf(b, "complete -c %s -n __fish_use_subcommand -k -a '(__fish_complete_suffix .md .markdown)'\n", progName)

	for _, c := range cmds {
		cond := fmt.Sprintf("'__fish_seen_subcommand_from %s'", c.Name)
		for _, f := range c.Flags {
			fmt.Fprintf(b, "complete -c %s -n %s -l %s", progName, cond, f.Long)
			if f.Short != "" {
				fmt.Fprintf(b, " -s %s", f.Short)
			}
			switch f.Type {
			case flagBool:
			case flagEnum:
				fmt.Fprintf(b, " -x -a '%s'", strings.Join(f.Values, " "))
			case flagFile:
				suffixes := make([]string, len(f.FileExts))
				for i, ext := range f.FileExts {
					suffixes[i] = "." + ext
				}
				fmt.Fprintf(b, " -r -a '(__fish_complete_suffix %s)'", strings.Join(suffixes, " "))
			case flagDir:
				b.WriteString(" -r -a '(__fish_complete_directories)'")
			default:
				b.WriteString(" -r")
			}
			fmt.Fprintf(b, " -d '%s'\n", fishQuote(f.Desc))
		}
		if len(c.Args) > 0 {
			fmt.Fprintf(b, "complete -c %s -n %s -a '%s'\n", progName, cond, strings.Join(c.Args, " "))
		}
		if c.TakesFiles {
			fmt.Fprintf(b, "complete -c %s -n %s -a '(__fish_complete_suffix .md .markdown)'\n", progName, cond)
		}
	}
}

// fishQuote escapes text for a single-quoted fish string.
func fishQuote(s string) string {
	return strings.NewReplacer(`\`, `\\`, "'", `\'`).Replace(s)
}

// ---------------------------------------------------------------------------
// PowerShell
// ---------------------------------------------------------------------------

func writePowerShell(b *strings.Builder, cmds []commandDef) {
	fmt.Fprintf(b, "# PowerShell completion for %s\n", progName)
	fmt.Fprintf(b, "Register-ArgumentCompleter -Native -CommandName %s -ScriptBlock {\n", progName)
	b.WriteString("    param($wordToComplete, $commandAst, $cursorPosition)\n")
	fmt.Fprintf(b, "    $commands = @(%s)\n", psList(commandNames(cmds)))
	b.WriteString("    $candidates = @{\n")
	for _, c := range cmds {
		var words []string
		for _, f := range c.Flags {
			words = append(words, flagSpellings(f)...)
		}
		words = append(words, c.Args...)
		fmt.Fprintf(b, "        '%s' = @(%s)\n", c.Name, psList(words))
	}
	b.WriteString("    }\n")
	b.WriteString("    $elements = @($commandAst.CommandElements | ForEach-Object { $_.ToString() })\n")
	b.WriteString("    if ($elements.Count -le 1 -or ($elements.Count -eq 2 -and $wordToComplete -ne '')) {\n")
	b.WriteString("        $words = $commands\n")
	b.WriteString("    } elseif ($candidates.ContainsKey($elements[1])) {\n")
	b.WriteString("        $words = $candidates[$elements[1]]\n")
	b.WriteString("    } else {\n")
	b.WriteString("        $words = $candidates['build']\n")
	b.WriteString("    }\n")
	b.WriteString("    $words | Where-Object { $_ -like \"$wordToComplete*\" } | ForEach-Object {\n")
	b.WriteString("        [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)\n")
	b.WriteString("    }\n")
	b.WriteString("}\n")
}

func psList(words []string) string {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = "'" + strings.ReplaceAll(w, "'", "''") + "'"
	}
	return strings.Join(quoted, ", ")
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func commandNames(cmds []commandDef) []string {
	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.Name
	}
	return names
}

// flagSpellings returns "--long" and, if set, "-s".
func flagSpellings(f flagDef) []string {
	if f.Short == "" {
		return []string{"--" + f.Long}
	}
	return []string{"-" + f.Short, "--" + f.Long}
}

// flagsTakingValues returns the flags that consume the next word.
func flagsTakingValues(flags []flagDef) []flagDef {
	var out []flagDef
	for _, f := range flags {
		if f.Type != flagBool {
			out = append(out, f)
		}
	}
	return out
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}

	return GenerateCompletion(env.Stdout, Shell(args[0]))
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2slides completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate shell completion script for the specified shell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells:")
	fmt.Fprintln(w, "  bash        Bash completion script")
	fmt.Fprintln(w, "  zsh         Zsh completion script")
	fmt.Fprintln(w, "  fish        Fish completion script")
	fmt.Fprintln(w, "  powershell  PowerShell completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Bash:")
	fmt.Fprintln(w, "    # Add to ~/.bashrc:")
	fmt.Fprintln(w, "    eval \"$(md2slides completion bash)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Zsh:")
	fmt.Fprintln(w, "    # Add to ~/.zshrc (after compinit):")
	fmt.Fprintln(w, "    eval \"$(md2slides completion zsh)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Fish:")
	fmt.Fprintln(w, "    md2slides completion fish > ~/.config/fish/completions/md2slides.fish")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  PowerShell:")
	fmt.Fprintln(w, "    # Add to $PROFILE:")
	fmt.Fprintln(w, "    md2slides completion powershell | Out-String | Invoke-Expression")
}
