package main

import (
	"flag"
	"fmt"
	"os"
)

func completionCmd() {
	fs := flag.NewFlagSet("completion", flag.ExitOnError)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: nanoman completion <bash|zsh|fish>\n\n")
		fmt.Fprintf(os.Stderr, "Generate shell completion scripts.\n\n")
		fmt.Fprintf(os.Stderr, "Examples:\n")
		fmt.Fprintf(os.Stderr, "  # Bash\n")
		fmt.Fprintf(os.Stderr, "  nanoman completion bash > /usr/local/etc/bash_completion.d/nanoman\n")
		fmt.Fprintf(os.Stderr, "  # Zsh\n")
		fmt.Fprintf(os.Stderr, "  nanoman completion zsh > \"${fpath[1]}/_nanoman\"\n")
		fmt.Fprintf(os.Stderr, "  # Fish\n")
		fmt.Fprintf(os.Stderr, "  nanoman completion fish > ~/.config/fish/completions/nanoman.fish\n")
	}

	if err := fs.Parse(os.Args[2:]); err != nil {
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: shell name is required (bash, zsh, or fish)\n\n")
		fs.Usage()
		os.Exit(1)
	}

	shell := fs.Arg(0)
	switch shell {
	case "bash":
		fmt.Print(generateBashCompletion())
	case "zsh":
		fmt.Print(generateZshCompletion())
	case "fish":
		fmt.Print(generateFishCompletion())
	default:
		fmt.Fprintf(os.Stderr, "Error: unsupported shell %q (use bash, zsh, or fish)\n", shell)
		os.Exit(1)
	}
}

func generateBashCompletion() string {
	return `# bash completion for nanoman                            -*- shell-script -*-

_nanoman() {
    local cur prev words cword
    _init_completion || return

    local commands="send history templates validate completion version help"

    local send_flags="-X --method -H --header -d --data --query --output --timeout --color --verbose --fail --no-history --from-curl"
    local history_flags="--limit --output --yes"
    local templates_flags="--curl --auth"

    local methods="GET POST PUT PATCH DELETE"
    local output_formats="text json junit"
    local color_modes="auto always never"
    local history_cmds="list search clear"
    local shells="bash zsh fish"

    if [[ ${cword} -eq 1 ]]; then
        COMPREPLY=($(compgen -W "${commands}" -- "${cur}"))
        return
    fi

    local command="${words[1]}"

    # Complete flag values
    case "${prev}" in
        -X|--method)
            COMPREPLY=($(compgen -W "${methods}" -- "${cur}"))
            return
            ;;
        --output)
            case "${command}" in
                send)
                    COMPREPLY=($(compgen -W "${output_formats}" -- "${cur}"))
                    ;;
                history)
                    COMPREPLY=($(compgen -W "text json" -- "${cur}"))
                    ;;
            esac
            return
            ;;
        --color)
            COMPREPLY=($(compgen -W "${color_modes}" -- "${cur}"))
            return
            ;;
        -H|--header|-d|--data|--query|--timeout|--limit)
            # These take user-provided values, no completion
            return
            ;;
    esac

    # Complete flags for each subcommand
    case "${command}" in
        send)
            if [[ "${cur}" == -* ]]; then
                COMPREPLY=($(compgen -W "${send_flags}" -- "${cur}"))
            fi
            ;;
        history)
            if [[ "${cur}" == -* ]]; then
                COMPREPLY=($(compgen -W "${history_flags}" -- "${cur}"))
            elif [[ ${cword} -eq 2 ]]; then
                COMPREPLY=($(compgen -W "${history_cmds}" -- "${cur}"))
            fi
            ;;
        templates)
            if [[ "${cur}" == -* ]]; then
                COMPREPLY=($(compgen -W "${templates_flags}" -- "${cur}"))
            fi
            ;;
        completion)
            COMPREPLY=($(compgen -W "${shells}" -- "${cur}"))
            ;;
    esac
}

complete -F _nanoman nanoman
`
}

func generateZshCompletion() string {
	return `#compdef nanoman

# zsh completion for nanoman

_nanoman() {
    local -a commands
    commands=(
        'send:Send a request and print the response'
        'history:List, search or clear request history'
        'templates:List API templates, optionally filtered'
        'validate:Check URLs the way the request editor does'
        'completion:Generate shell completion scripts'
        'version:Print version information'
        'help:Show help message'
    )

    _arguments -C \
        '1:command:->command' \
        '*::arg:->args'

    case $state in
        command)
            _describe -t commands 'nanoman commands' commands
            ;;
        args)
            case $words[1] in
                send)
                    _arguments \
                        '-X[HTTP method]:method:(GET POST PUT PATCH DELETE)' \
                        '--method[HTTP method]:method:(GET POST PUT PATCH DELETE)' \
                        '*-H[Request header]:header:' \
                        '*--header[Request header]:header:' \
                        '-d[Request body]:body:' \
                        '--data[Request body]:body:' \
                        '--query[gjson path to extract]:path:' \
                        '--output[Output format]:format:(text json junit)' \
                        '--timeout[Request timeout]:timeout:' \
                        '--color[Highlight output]:mode:(auto always never)' \
                        '--verbose[Show status line, headers and debug logs]' \
                        '--fail[Exit 1 on HTTP error status]' \
                        '--no-history[Do not record the request]' \
                        '--from-curl[Build the request from a curl command]:curl command:' \
                        '*:url:_urls'
                    ;;
                history)
                    _arguments \
                        '--limit[Maximum entries to list]:limit:' \
                        '--output[Output format]:format:(text json)' \
                        '--yes[Clear without asking]' \
                        '1:subcommand:(list search clear)'
                    ;;
                templates)
                    _arguments \
                        '--curl[Print each example as a curl command]' \
                        '--auth[List auth presets]'
                    ;;
                validate)
                    _arguments \
                        '*:url:_urls'
                    ;;
                completion)
                    _arguments \
                        '1:shell:(bash zsh fish)'
                    ;;
            esac
            ;;
    esac
}

_nanoman "$@"
`
}

func generateFishCompletion() string {
	return `# fish completion for nanoman

# Disable file completions by default
complete -c nanoman -f

# Subcommands
complete -c nanoman -n '__fish_use_subcommand' -a send -d 'Send a request and print the response'
complete -c nanoman -n '__fish_use_subcommand' -a history -d 'List, search or clear request history'
complete -c nanoman -n '__fish_use_subcommand' -a templates -d 'List API templates, optionally filtered'
complete -c nanoman -n '__fish_use_subcommand' -a validate -d 'Check URLs the way the request editor does'
complete -c nanoman -n '__fish_use_subcommand' -a completion -d 'Generate shell completion scripts'
complete -c nanoman -n '__fish_use_subcommand' -a version -d 'Print version information'
complete -c nanoman -n '__fish_use_subcommand' -a help -d 'Show help message'

# send flags
complete -c nanoman -n '__fish_seen_subcommand_from send' -s X -l method -d 'HTTP method' -ra 'GET POST PUT PATCH DELETE'
complete -c nanoman -n '__fish_seen_subcommand_from send' -s H -l header -d 'Request header' -r
complete -c nanoman -n '__fish_seen_subcommand_from send' -s d -l data -d 'Request body' -r
complete -c nanoman -n '__fish_seen_subcommand_from send' -l query -d 'gjson path to extract' -r
complete -c nanoman -n '__fish_seen_subcommand_from send' -l output -d 'Output format' -ra 'text json junit'
complete -c nanoman -n '__fish_seen_subcommand_from send' -l timeout -d 'Request timeout' -r
complete -c nanoman -n '__fish_seen_subcommand_from send' -l color -d 'Highlight output' -ra 'auto always never'
complete -c nanoman -n '__fish_seen_subcommand_from send' -l verbose -d 'Show status line, headers and debug logs'
complete -c nanoman -n '__fish_seen_subcommand_from send' -l fail -d 'Exit 1 on HTTP error status'
complete -c nanoman -n '__fish_seen_subcommand_from send' -l no-history -d 'Do not record the request'
complete -c nanoman -n '__fish_seen_subcommand_from send' -l from-curl -r -d 'Build the request from a curl command'

# history
complete -c nanoman -n '__fish_seen_subcommand_from history' -a 'list search clear'
complete -c nanoman -n '__fish_seen_subcommand_from history' -l limit -d 'Maximum entries to list' -r
complete -c nanoman -n '__fish_seen_subcommand_from history' -l output -d 'Output format' -ra 'text json'
complete -c nanoman -n '__fish_seen_subcommand_from history' -l yes -d 'Clear without asking'

# templates flags
complete -c nanoman -n '__fish_seen_subcommand_from templates' -l curl -d 'Print each example as a curl command'
complete -c nanoman -n '__fish_seen_subcommand_from templates' -l auth -d 'List auth presets'

# completion - shell names
complete -c nanoman -n '__fish_seen_subcommand_from completion' -a 'bash zsh fish' -d 'Shell type'
`
}
