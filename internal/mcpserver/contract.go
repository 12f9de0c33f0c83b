package mcpserver

// DocumentFormatContract describes the canonical .jera document format that
// LLM consumers should follow when writing document content.
const DocumentFormatContract = `# Jera Document Format Contract

Every document stored in a Jera workspace MUST follow this structure.

## Structure

` + "```" + `markdown
---
title: Human-readable title      # RECOMMENDED - used in listings and search
type: note                       # OPTIONAL - note|experiment; overrides the directory kind
tags:                            # OPTIONAL - YAML list; drives tag pages
  - tag-one
  - tag-two
date: 2026-01-15                 # OPTIONAL - ISO date; newest-first ordering
summary: One-line summary        # OPTIONAL - shown in listings
slug: custom-slug                # OPTIONAL - overrides the file name stem
---

Body text in Markdown, interleaved with typed blocks.

:::summary
Short abstract shown at the top of the rendered page.
:::

:::figure
path: /assets/plot.png
caption: Training loss over epochs
alt: Line chart of training loss
:::

:::log
raw command output, whitespace preserved exactly
:::

:::code
lang: python
caption: Training loop
for epoch in range(10):
    train(epoch)
:::
` + "```" + `

## Rules

1. **Front matter is mandatory.** The very first line of the file must be ` + "`---`" + `
   and the metadata block ends at the next ` + "`---`" + ` line.
2. **Metadata is a flat YAML mapping** of scalars and string lists. Duplicate
   keys are rejected.
3. **Block sigils** (` + "`:::summary`" + `, ` + "`:::figure`" + `, ` + "`:::log`" + `, ` + "`:::code`" + `, and the
   closing ` + "`:::`" + `) must sit alone on their line; surrounding whitespace is fine.
4. **Blocks cannot nest.** A block missing its closing ` + "`:::`" + ` runs to the end of
   the file.
5. **Unknown ` + "`:::name`" + ` markers are not blocks** — they stay in the surrounding
   Markdown verbatim.
6. **Figure blocks** hold only ` + "`key: value`" + ` lines; recognised keys are ` + "`path`" + `,
   ` + "`caption`" + `, and ` + "`alt`" + `.
7. **Code blocks** may open with ` + "`lang:`" + ` and ` + "`caption:`" + ` header lines; the header
   ends at the first blank or non-key line, and everything after it is verbatim
   code.
8. **Files** end with ` + "`.jera`" + `, live under ` + "`notes/`" + ` or ` + "`experiments/`" + `, and are
   UTF-8 with a trailing newline.

## Assets & Images

- Put binary assets in the workspace ` + "`assets/`" + ` directory; the build copies it
  into the site verbatim.
- Reference them from figure blocks with absolute paths: ` + "`path: /assets/file.png`" + `.

## Example

` + "```" + `markdown
---
title: LR sweep on CIFAR-10
type: experiment
tags:
  - ml
  - sweeps
date: 2026-01-20
summary: Scanning learning rates from 1e-4 to 1e-1.
---

# LR sweep on CIFAR-10

:::summary
1e-2 wins by a clear margin; everything above diverges.
:::

## Setup

Batch size 128, SGD with momentum 0.9.

:::code
lang: bash
python train.py --lr 1e-2 --epochs 30
:::

:::figure
path: /assets/lr-sweep.png
caption: Validation accuracy per learning rate
:::
` + "```" + `
`
