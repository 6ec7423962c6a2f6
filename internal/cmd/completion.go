package cmd

import (
	"fmt"
	"io"
	"os"
)

type CompletionCmd struct {
	Shell string `arg:"" enum:"bash,zsh,fish" help:"Shell type: bash, zsh, or fish"`

	out io.Writer `kong:"-"`
}

func (c *CompletionCmd) Run() error {
	w := c.out
	if w == nil {
		w = os.Stdout
	}

	var script string
	switch c.Shell {
	case "bash":
		script = bashCompletion
	case "zsh":
		script = zshCompletion
	case "fish":
		script = fishCompletion
	default:
		return fmt.Errorf("unsupported shell: %s (supported: bash, zsh, fish)", c.Shell)
	}
	_, err := fmt.Fprint(w, script)
	return err
}

const bashCompletion = `# bash completion for box3dmode

_box3dmode_completions() {
    local cur prev opts
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    # Main commands
    if [[ ${COMP_CWORD} -eq 1 ]]; then
        opts="convert inspect modes version completion"
        COMPREPLY=( $(compgen -W "${opts}" -- ${cur}) )
        return 0
    fi

    # Options for convert command
    if [[ ${COMP_WORDS[1]} == "convert" ]]; then
        case "${prev}" in
            -o|--output)
                COMPREPLY=( $(compgen -f -X '!*.@(yaml|yml)' -- ${cur}) )
                return 0
                ;;
            -s|--src|-d|--dst)
                COMPREPLY=( $(compgen -W "lidar cam depth" -- ${cur}) )
                return 0
                ;;
            -b|--box|--rt-mat|-j|--workers)
                return 0
                ;;
            *)
                if [[ ${cur} == -* ]]; then
                    opts="-o --output -s --src -d --dst -b --box --no-yaw --correct-yaw --rt-mat -j --workers --plain -h --help"
                    COMPREPLY=( $(compgen -W "${opts}" -- ${cur}) )
                else
                    COMPREPLY=( $(compgen -f -X '!*.@(yaml|yml)' -- ${cur}) )
                fi
                return 0
                ;;
        esac
    fi

    # Options for inspect command
    if [[ ${COMP_WORDS[1]} == "inspect" ]]; then
        if [[ ${cur} == -* ]]; then
            opts="-h --help"
            COMPREPLY=( $(compgen -W "${opts}" -- ${cur}) )
        else
            COMPREPLY=( $(compgen -f -X '!*.@(yaml|yml)' -- ${cur}) )
        fi
        return 0
    fi

    # Options for completion command
    if [[ ${COMP_WORDS[1]} == "completion" ]]; then
        if [[ ${COMP_CWORD} -eq 2 ]]; then
            opts="bash zsh fish"
            COMPREPLY=( $(compgen -W "${opts}" -- ${cur}) )
        fi
        return 0
    fi
}

complete -F _box3dmode_completions box3dmode
`

const zshCompletion = `#compdef box3dmode

_box3dmode() {
    local -a commands
    commands=(
        'convert:Convert boxes between LiDAR, camera and depth coordinates'
        'inspect:Inspect a job or result file and show its boxes'
        'modes:List coordinate systems and supported conversions'
        'version:Show version information'
        'completion:Generate shell completion script'
    )

    local -a convert_opts
    convert_opts=(
        '(-o --output)'{-o,--output}'[Output file path]:output file:_files -g "*.{yaml,yml}"'
        '(-s --src)'{-s,--src}'[Source coordinate system]:mode:(lidar cam depth)'
        '(-d --dst)'{-d,--dst}'[Destination coordinate system]:mode:(lidar cam depth)'
        '*'{-b,--box}'[Box fields, comma separated]:box:'
        '--no-yaw[Boxes carry no yaw field]'
        '--correct-yaw[Rotate the heading vector instead of applying the closed-form offset]'
        '--rt-mat[Custom 3x3, 3x4 or 4x4 matrix, rows separated by ;]:matrix:'
        '(-j --workers)'{-j,--workers}'[Parallel jobs]:count:'
        '--plain[Disable syntax highlighting]'
        '(-h --help)'{-h,--help}'[Show help]'
        '*:job file:_files -g "*.{yaml,yml}"'
    )

    local -a inspect_opts
    inspect_opts=(
        '(-h --help)'{-h,--help}'[Show help]'
        '*:yaml file:_files -g "*.{yaml,yml}"'
    )

    local -a completion_shells
    completion_shells=(
        'bash:Generate bash completion'
        'zsh:Generate zsh completion'
        'fish:Generate fish completion'
    )

    _arguments -C \
        '1: :->command' \
        '*:: :->args'

    case $state in
        command)
            _describe 'command' commands
            ;;
        args)
            case $words[1] in
                convert)
                    _arguments $convert_opts
                    ;;
                inspect)
                    _arguments $inspect_opts
                    ;;
                completion)
                    _describe 'shell' completion_shells
                    ;;
                modes|version)
                    _arguments '(-h --help)'{-h,--help}'[Show help]'
                    ;;
            esac
            ;;
    esac
}

_box3dmode
`

const fishCompletion = `# fish completion for box3dmode

# Main commands
complete -c box3dmode -f -n "__fish_use_subcommand" -a "convert" -d "Convert boxes between coordinate systems"
complete -c box3dmode -f -n "__fish_use_subcommand" -a "inspect" -d "Inspect a job or result file"
complete -c box3dmode -f -n "__fish_use_subcommand" -a "modes" -d "List coordinate systems"
complete -c box3dmode -f -n "__fish_use_subcommand" -a "version" -d "Show version information"
complete -c box3dmode -f -n "__fish_use_subcommand" -a "completion" -d "Generate shell completion script"

# convert command options
complete -c box3dmode -f -n "__fish_seen_subcommand_from convert" -s o -l output -d "Output file path" -r -a "(__fish_complete_suffix .yaml)"
complete -c box3dmode -f -n "__fish_seen_subcommand_from convert" -s s -l src -d "Source coordinate system" -r -a "lidar cam depth"
complete -c box3dmode -f -n "__fish_seen_subcommand_from convert" -s d -l dst -d "Destination coordinate system" -r -a "lidar cam depth"
complete -c box3dmode -f -n "__fish_seen_subcommand_from convert" -s b -l box -d "Box fields, comma separated" -r
complete -c box3dmode -f -n "__fish_seen_subcommand_from convert" -l no-yaw -d "Boxes carry no yaw field"
complete -c box3dmode -f -n "__fish_seen_subcommand_from convert" -l correct-yaw -d "Rotate the heading vector"
complete -c box3dmode -f -n "__fish_seen_subcommand_from convert" -l rt-mat -d "Custom 3x3, 3x4 or 4x4 matrix" -r
complete -c box3dmode -f -n "__fish_seen_subcommand_from convert" -s j -l workers -d "Parallel jobs" -r
complete -c box3dmode -f -n "__fish_seen_subcommand_from convert" -l plain -d "Disable syntax highlighting"
complete -c box3dmode -f -n "__fish_seen_subcommand_from convert" -s h -l help -d "Show help"
complete -c box3dmode -n "__fish_seen_subcommand_from convert" -a "(__fish_complete_suffix .yaml)" -d "Job file"
complete -c box3dmode -n "__fish_seen_subcommand_from convert" -a "(__fish_complete_suffix .yml)" -d "Job file"

# inspect command options
complete -c box3dmode -f -n "__fish_seen_subcommand_from inspect" -s h -l help -d "Show help"
complete -c box3dmode -n "__fish_seen_subcommand_from inspect" -a "(__fish_complete_suffix .yaml)" -d "YAML file"

# completion command options
complete -c box3dmode -f -n "__fish_seen_subcommand_from completion" -a "bash" -d "Generate bash completion"
complete -c box3dmode -f -n "__fish_seen_subcommand_from completion" -a "zsh" -d "Generate zsh completion"
complete -c box3dmode -f -n "__fish_seen_subcommand_from completion" -a "fish" -d "Generate fish completion"

# version command options
complete -c box3dmode -f -n "__fish_seen_subcommand_from version" -s h -l help -d "Show help"
`

func (c *CompletionCmd) Help() string {
	return `
Generate shell completion scripts for box3dmode.

Examples:
  # Bash
  box3dmode completion bash > ~/.local/share/bash-completion/completions/box3dmode

  # Zsh
  box3dmode completion zsh > ~/.zsh/completion/_box3dmode
  # or add to .zshrc:
  autoload -U compinit && compinit

  # Fish
  box3dmode completion fish > ~/.config/fish/completions/box3dmode.fish
`
}
