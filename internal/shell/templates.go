package shell

// Templates use {% %} delimiters so that shell parameter expansions such as
// ${VAR:-} pass through untouched.

const bashTemplate = `{%.Start%}
# Managed by uvsync. Changes inside this block are overwritten.
_uvsync_hook() {
  local _uvsync_status=$?
  if [ -n "${{%.PrefixVar%}:-}" ]{%if .ExcludeBase%} && [ "${{%.NameVar%}:-}" != "{%.BaseName%}" ]{%end%}; then
    export {%.Variable%}="${%.PrefixVar%}"
    _UVSYNC_VALUE="${%.PrefixVar%}"
  elif [ -n "${_UVSYNC_VALUE:-}" ]; then
    if [ "${{%.Variable%}:-}" = "$_UVSYNC_VALUE" ]; then
      unset {%.Variable%}
    fi
    unset _UVSYNC_VALUE
  fi
  return $_uvsync_status
}
case ";${PROMPT_COMMAND:-};" in
  *";_uvsync_hook;"*) ;;
  *) PROMPT_COMMAND="_uvsync_hook${PROMPT_COMMAND:+;$PROMPT_COMMAND}" ;;
esac
_uvsync_hook
{%.End%}
`

const zshTemplate = `{%.Start%}
# Managed by uvsync. Changes inside this block are overwritten.
_uvsync_hook() {
  if [[ -n "${{%.PrefixVar%}:-}"{%if .ExcludeBase%} && "${{%.NameVar%}:-}" != "{%.BaseName%}"{%end%} ]]; then
    export {%.Variable%}="${%.PrefixVar%}"
    typeset -g _UVSYNC_VALUE="${%.PrefixVar%}"
  elif [[ -n "${_UVSYNC_VALUE:-}" ]]; then
    if [[ "${{%.Variable%}:-}" == "$_UVSYNC_VALUE" ]]; then
      unset {%.Variable%}
    fi
    unset _UVSYNC_VALUE
  fi
}
autoload -Uz add-zsh-hook
add-zsh-hook precmd _uvsync_hook
_uvsync_hook
{%.End%}
`

const fishTemplate = `{%.Start%}
# Managed by uvsync. Changes inside this block are overwritten.
function _uvsync_hook --on-event fish_prompt
    if set -q {%.PrefixVar%}; and test -n "${%.PrefixVar%}"{%if .ExcludeBase%}; and test "${%.NameVar%}" != "{%.BaseName%}"{%end%}
        set -gx {%.Variable%} ${%.PrefixVar%}
        set -g _uvsync_value ${%.PrefixVar%}
    else if set -q _uvsync_value
        if test "${%.Variable%}" = "$_uvsync_value"
            set -e {%.Variable%}
        end
        set -e _uvsync_value
    end
end
_uvsync_hook
{%.End%}
`

// tcsh aliases are single lines; printenv avoids "Undefined variable" errors
// for unset environment variables. An existing precmd alias runs after the hook.
const tcshTemplate = `{%.Start%}
# Managed by uvsync. Changes inside this block are overwritten.
if ( ! $?_uvsync_value ) set _uvsync_value = ""
alias _uvsync_hook 'set _uvsync_prefix = "` + "`" + `printenv {%.PrefixVar%}` + "`" + `"; ` +
	`set _uvsync_name = "` + "`" + `printenv {%.NameVar%}` + "`" + `"; ` +
	`set _uvsync_active = 0; ` +
	`if ( "$_uvsync_prefix" != ""{%if .ExcludeBase%} && "$_uvsync_name" != "{%.BaseName%}"{%end%} ) set _uvsync_active = 1; ` +
	`if ( $_uvsync_active ) setenv {%.Variable%} "$_uvsync_prefix"; ` +
	`if ( $_uvsync_active ) set _uvsync_value = "$_uvsync_prefix"; ` +
	`if ( ! $_uvsync_active && "$_uvsync_value" != "" && "` + "`" + `printenv {%.Variable%}` + "`" + `" == "$_uvsync_value" ) unsetenv {%.Variable%}; ` +
	`if ( ! $_uvsync_active ) set _uvsync_value = ""'
if ( ! $?_uvsync_precmd ) then
    set _uvsync_precmd = "` + "`" + `alias precmd` + "`" + `"
    if ( "$_uvsync_precmd" == "" ) then
        alias precmd _uvsync_hook
    else
        alias precmd "_uvsync_hook; $_uvsync_precmd"
    endif
endif
_uvsync_hook
{%.End%}
`

const powershellTemplate = `{%.Start%}
# Managed by uvsync. Changes inside this block are overwritten.
function global:Invoke-UvSyncHook {
    $prefix = $env:{%.PrefixVar%}
    if ($prefix{%if .ExcludeBase%} -and $env:{%.NameVar%} -ne '{%.BaseName%}'{%end%}) {
        $env:{%.Variable%} = $prefix
        $global:UvSyncValue = $prefix
    } elseif ($global:UvSyncValue) {
        if ($env:{%.Variable%} -eq $global:UvSyncValue) {
            Remove-Item Env:{%.Variable%} -ErrorAction SilentlyContinue
        }
        $global:UvSyncValue = $null
    }
}
if (-not $global:UvSyncPrompt) {
    $global:UvSyncPrompt = $function:prompt
    function global:prompt {
        Invoke-UvSyncHook
        if ($global:UvSyncPrompt) { & $global:UvSyncPrompt } else { "PS $($executionContext.SessionState.Path.CurrentLocation)> " }
    }
}
Invoke-UvSyncHook
{%.End%}
`
