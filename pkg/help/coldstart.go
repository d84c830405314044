package help

const ColdstartYAML = `# chat-profiler Quick Start

input:
  format: "JSON Lines, one event per line"
  used_records: 'lines with {"message": {"role": "<role>", "content": "<string>"}}'
  ignored_records: "anything else (bad JSON, other roles, content blocks) is counted and skipped"

output_formats:
  table: "Rounded tables (default on a terminal)"
  yaml: "Structured report (default when piped)"
  json: "Structured report"
  text: "Numbered lists per category"

commands:
  analyze_one: |
    chat-profiler analyze --source current=session.jsonl

  analyze_many: |
    chat-profiler analyze --source current=new.jsonl --source older=old.jsonl@500

  with_config: |
    chat-profiler init-config --output profiler.yaml
    chat-profiler analyze --config profiler.yaml --format yaml --output report.yaml

  dump_transcript: |
    chat-profiler analyze --source older=old.jsonl --dump-source older --format text

  languages: |
    chat-profiler analyze --source current=session.jsonl --detect-language --languages english,german

  list_categories: |
    chat-profiler categories
    chat-profiler categories --config profiler.yaml

rule_kinds:
  keywords: "lowercased content contains any keyword"
  prefix: "raw content starts with any prefix (case sensitive)"
  markers: "raw content contains any marker, e.g. ! or ?"
  compound: "any marker AND any keyword"
  never: "placeholder category, matches nothing"

invariants:
  - "max_records bounds lines examined per source, not messages found"
  - "A message can land in many categories"
  - "Excerpts keep encounter order; display_limit applies only to output"
  - "Phrases: first N words of messages longer than 2 words, ties in first-seen order"

error_behavior:
  - "Malformed records: skipped and counted under summary.sources[].skipped"
  - "Unreadable source: whole run fails, no report is written"
  - "Exit codes: 0=success, 1=bad flags or config, 2=source failure"
`
