package processor

import (
	"statsync-server/internal/clients/klaviyo"
	"statsync-server/internal/store"
)

// flowMessageDetail pairs a message's attributes with the experiment it
// belongs to, when any.
type flowMessageDetail struct {
	message    store.FlowMessageDetails
	experiment *store.ExperimentDetails
}

// flowMessageDetails walks every action of every fetched flow definition
// and indexes message attributes by message id. Each action is checked for
// three shapes: a direct message, the main action of an A/B test, and the
// variations of the test's current experiment. Messages found through an
// A/B test carry the experiment's metadata.
func flowMessageDetails(definitions []klaviyo.FlowDefinition) map[string]flowMessageDetail {
	details := make(map[string]flowMessageDetail)
	for _, definition := range definitions {
		for _, action := range definition.Actions {
			if action.Message != nil {
				details[action.Message.ID] = flowMessageDetail{
					message: messageDetails(*action.Message),
				}
			}

			var experiment *store.ExperimentDetails
			if action.CurrentExperiment != nil {
				experiment = experimentDetails(*action.CurrentExperiment)
			}

			if action.MainAction != nil && action.MainAction.Message != nil {
				details[action.MainAction.Message.ID] = flowMessageDetail{
					message:    messageDetails(*action.MainAction.Message),
					experiment: experiment,
				}
			}

			if action.CurrentExperiment != nil {
				for _, variation := range action.CurrentExperiment.Variations {
					if variation.Message == nil {
						continue
					}
					details[variation.Message.ID] = flowMessageDetail{
						message:    messageDetails(*variation.Message),
						experiment: experiment,
					}
				}
			}
		}
	}
	return details
}

func messageDetails(message klaviyo.FlowMessage) store.FlowMessageDetails {
	return store.FlowMessageDetails{
		Name:          message.Name,
		FromEmail:     message.FromEmail,
		FromLabel:     message.FromLabel,
		Subject:       message.Subject,
		PreviewText:   message.PreviewText,
		TemplateID:    message.TemplateID,
		Transactional: message.Transactional,
		SmartSending:  message.SmartSending,
	}
}

func experimentDetails(experiment klaviyo.Experiment) *store.ExperimentDetails {
	variations := make([]store.ExperimentVariation, 0, len(experiment.Variations))
	for _, variation := range experiment.Variations {
		converted := store.ExperimentVariation{
			ID:                variation.ID,
			Name:              variation.Name,
			AllocationPercent: variation.AllocationPercent,
		}
		if variation.Message != nil {
			converted.Message = messageDetails(*variation.Message)
		}
		variations = append(variations, converted)
	}
	return &store.ExperimentDetails{
		ID:           experiment.ID,
		Name:         experiment.Name,
		Status:       experiment.Status,
		WinnerMetric: experiment.WinnerMetric,
		Variations:   variations,
	}
}
