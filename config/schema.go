package config

import (
	log "go.arcalot.io/log/v2"
	"go.flow.arcalot.io/pluginsdk/schema"
	"go.flow.arcalot.io/subfactory/export"
	"go.flow.arcalot.io/subfactory/internal/util"
	"go.flow.arcalot.io/subfactory/loader"
)

func getConfigSchema() *schema.TypedScopeSchema[*Config] {
	return schema.NewTypedScopeSchema[*Config](
		schema.NewStructMappedObjectSchema[*Config](
			"Config",
			map[string]*schema.PropertySchema{
				"log": schema.NewPropertySchema(
					schema.NewRefSchema("LogConfig", nil),
					schema.NewDisplayValue(
						schema.PointerTo("Logging"),
						schema.PointerTo("Logging configuration"),
						nil,
					),
					false,
					nil,
					nil,
					nil,
					util.JSONDefault(map[string]any{}),
					nil,
				),
				"graph": schema.NewPropertySchema(
					schema.NewRefSchema("GraphConfig", nil),
					schema.NewDisplayValue(
						schema.PointerTo("Graph"),
						schema.PointerTo("How dependency graphs are loaded."),
						nil,
					),
					false,
					nil,
					nil,
					nil,
					util.JSONDefault(map[string]any{}),
					nil,
				),
				"output": schema.NewPropertySchema(
					schema.NewRefSchema("OutputConfig", nil),
					schema.NewDisplayValue(
						schema.PointerTo("Output"),
						schema.PointerTo("How found clusters are written."),
						nil,
					),
					false,
					nil,
					nil,
					nil,
					util.JSONDefault(map[string]any{}),
					nil,
				),
			},
		),
		schema.NewStructMappedObjectSchema[GraphConfig](
			"GraphConfig",
			map[string]*schema.PropertySchema{
				"item_names": schema.NewPropertySchema(
					schema.NewStringEnumSchema(map[string]*schema.DisplayValue{
						string(loader.ItemNamesID):    {NameValue: schema.PointerTo("Node ID")},
						string(loader.ItemNamesLabel): {NameValue: schema.PointerTo("Node label")},
					}),
					schema.NewDisplayValue(
						schema.PointerTo("Item names"),
						schema.PointerTo(
							"Whether items in a DOT graph are named by the node ID or by the label attribute.",
						),
						nil,
					),
					false,
					nil,
					nil,
					nil,
					util.JSONDefault(loader.ItemNamesID),
					nil,
				),
				"warn_unknown_seeds": schema.NewPropertySchema(
					schema.NewBoolSchema(),
					schema.NewDisplayValue(
						schema.PointerTo("Warn about unknown seeds"),
						schema.PointerTo("Log a warning for every seed item that is not part of the graph."),
						nil,
					),
					false,
					nil,
					nil,
					nil,
					util.JSONDefault(true),
					nil,
				),
				"reject_cycles": schema.NewPropertySchema(
					schema.NewBoolSchema(),
					schema.NewDisplayValue(
						schema.PointerTo("Reject cycles"),
						schema.PointerTo("Refuse graphs in which an item transitively requires itself."),
						nil,
					),
					false,
					nil,
					nil,
					nil,
					util.JSONDefault(false),
					nil,
				),
			},
		),
		schema.NewStructMappedObjectSchema[OutputConfig](
			"OutputConfig",
			map[string]*schema.PropertySchema{
				"format": schema.NewPropertySchema(
					schema.NewStringEnumSchema(map[string]*schema.DisplayValue{
						string(export.FormatYAML):    {NameValue: schema.PointerTo("YAML")},
						string(export.FormatTable):   {NameValue: schema.PointerTo("Table")},
						string(export.FormatDOT):     {NameValue: schema.PointerTo("Graphviz DOT")},
						string(export.FormatMermaid): {NameValue: schema.PointerTo("Mermaid")},
					}),
					schema.NewDisplayValue(
						schema.PointerTo("Format"),
						schema.PointerTo("Output format for found clusters."),
						nil,
					),
					false,
					nil,
					nil,
					nil,
					util.JSONDefault(export.FormatYAML),
					nil,
				),
				"include_steps": schema.NewPropertySchema(
					schema.NewBoolSchema(),
					schema.NewDisplayValue(
						schema.PointerTo("Include steps"),
						schema.PointerTo("Add the merge trace to the YAML output."),
						nil,
					),
					false,
					nil,
					nil,
					nil,
					util.JSONDefault(false),
					nil,
				),
			},
		),
		schema.NewStructMappedObjectSchema[log.Config](
			"LogConfig",
			map[string]*schema.PropertySchema{
				"level": schema.NewPropertySchema(
					schema.NewStringEnumSchema(map[string]*schema.DisplayValue{
						string(log.LevelDebug):   {NameValue: schema.PointerTo("Debug")},
						string(log.LevelInfo):    {NameValue: schema.PointerTo("Informational")},
						string(log.LevelWarning): {NameValue: schema.PointerTo("Warnings")},
						string(log.LevelError):   {NameValue: schema.PointerTo("Errors")},
					}),
					schema.NewDisplayValue(
						schema.PointerTo("Log level"),
						schema.PointerTo(
							"Minimum level of log messages to write.",
						),
						nil,
					),
					false,
					nil,
					nil,
					nil,
					util.JSONDefault(log.LevelInfo),
					nil,
				),
				"destination": schema.NewPropertySchema(
					schema.NewStringEnumSchema(map[string]*schema.DisplayValue{
						string(log.DestinationStdout): {NameValue: schema.PointerTo("Standard output")},
					}),
					schema.NewDisplayValue(
						schema.PointerTo("Log destination"),
						schema.PointerTo(
							"Where the logs should be written to.",
						),
						nil,
					),
					false,
					nil,
					nil,
					nil,
					util.JSONDefault(log.DestinationStdout),
					nil,
				),
			},
		),
	)
}
