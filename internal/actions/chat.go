package actions

// generalChat covers conversational turns with no entity action. Nothing is
// validated strictly and no identifier is minted; tone and response default
// when absent.
func (d *Dispatcher) generalChat(params map[string]any) (Fragment, error) {
	tone, ok := stringParam(params, "tone")
	if !ok || tone == "" {
		tone = "neutral"
	}

	response, _ := stringParam(params, "response")

	return Fragment{
		ActionMetadata: map[string]any{
			"tone":     tone,
			"response": response,
		},
		ActionIcon: IconChat,
	}, nil
}
